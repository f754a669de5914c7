package lifecycle

import (
	"context"
	"time"
)

// Handle 是单个后台服务持有的生命周期句柄。
type Handle struct {
	ctx context.Context
	// Close 通知管理器本服务已退出，应在服务的goroutine中defer调用。
	Close func()
}

// Ctx 返回与管理器停机信号绑定的上下文
func (h *Handle) Ctx() context.Context {
	return h.ctx
}

// Done 返回在管理器广播停机信号时关闭的channel
func (h *Handle) Done() <-chan struct{} {
	return h.ctx.Done()
}

// Err 在停机信号发出后返回取消原因
func (h *Handle) Err() error {
	return h.ctx.Err()
}

// Sleep 休眠指定时长；收到停机信号时提前返回取消错误。
// 后台循环应使用它代替time.Sleep，否则无法及时响应停机。
func (h *Handle) Sleep(duration time.Duration) error {
	timer := time.NewTimer(duration)

	select {
	case <-h.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return h.Err()
	case <-timer.C:
		return nil
	}
}
