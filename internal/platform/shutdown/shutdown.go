package shutdown

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SlpAus/learning-feed-backend/internal/platform/backup"
	"github.com/SlpAus/learning-feed-backend/pkg/lifecycle"
)

// Coordinator 负责编排应用程序的优雅停机流程。
// 它接收外部创建的生命周期管理器，并使用它来协调后台服务的退出。
type Coordinator struct {
	Manager *lifecycle.Manager
	Backup  *backup.Service
}

// NewCoordinator 创建一个新的停机协调器。
// backupService可以为nil，表示停机时不执行最终备份。
func NewCoordinator(mgr *lifecycle.Manager, backupService *backup.Service) *Coordinator {
	return &Coordinator{
		Manager: mgr,
		Backup:  backupService,
	}
}

// ListenForSignalsAndShutdown 启动信号监听并阻塞，直到停机流程完成。
func (c *Coordinator) ListenForSignalsAndShutdown(server *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 阻塞直到接收到停机信号
	<-sigChan
	fmt.Println("\n收到关闭信号，开始优雅停机...")

	// 关闭HTTP服务器，允许正在进行的请求完成
	httpTimeout := 15 * time.Second
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), httpTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("Gin服务器关闭错误: %v\n", err)
	} else {
		fmt.Println("Gin服务器已关闭。")
	}

	// 广播停机信号并等待后台服务退出
	gracefulTimeout := 30 * time.Second
	fmt.Printf("等待最多 %v 以完成后台任务...\n", gracefulTimeout)
	c.Manager.Shutdown()

	remainingServices := c.Manager.WaitWithTimeout(gracefulTimeout)
	if len(remainingServices) == 0 {
		fmt.Println("所有后台服务已优雅关闭。")
	} else {
		fmt.Printf("警告: 以下服务未能在超时前退出: %v\n", remainingServices)
	}

	// 最终步骤：停机前创建一次数据库备份
	if c.Backup != nil {
		fmt.Println("正在执行最终备份...")
		if err := c.Backup.CreateConsistentBackup(context.Background()); err != nil {
			fmt.Printf("最终备份失败: %v\n", err)
		} else {
			fmt.Println("最终备份成功。")
		}
	}

	fmt.Println("优雅停机完成。")
}
