package health

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/SlpAus/learning-feed-backend/internal/platform/database"
	"github.com/SlpAus/learning-feed-backend/pkg/lifecycle"
)

const (
	checkInterval = 5 * time.Second
	pingTimeout   = 2 * time.Second
)

var runIDPattern = regexp.MustCompile(`run_id:([a-f0-9]+)`)

// lastRunID 是最近一次观测到的Redis run_id。
// 只在启动时和检查循环里被写入，检查循环是唯一的后台写者。
var lastRunID string

// getRedisRunID 从Redis服务器信息中提取run_id
func getRedisRunID() (string, error) {
	ctx, cancel := context.WithTimeout(database.Ctx, pingTimeout)
	defer cancel()
	info, err := database.RDB.Info(ctx, "server").Result()
	if err != nil {
		return "", err
	}
	matches := runIDPattern.FindStringSubmatch(info)
	if len(matches) < 2 {
		return "", fmt.Errorf("无法在Redis INFO中找到run_id")
	}
	return matches[1], nil
}

// InitializeRunID 在启动时记录初始的run_id。
// Redis只承担detect缓存，获取失败时标记为不可用即可，不阻止启动。
func InitializeRunID() {
	runID, err := getRedisRunID()
	if err != nil {
		fmt.Printf("警告: 无法在启动时获取Redis Run ID: %v\n", err)
		database.UpdateStatus(false)
		return
	}
	lastRunID = runID
	fmt.Printf("Redis Run ID: %s\n", runID)
}

// PerformCheck 执行一次健康检查。
// detect缓存是懒加载的，Redis重启后缓存为空即可，无需任何重建动作，
// 检测到run_id变化时只需记录新的run_id并恢复可用状态。
func PerformCheck() {
	currentRunID, err := getRedisRunID()
	if err != nil {
		database.UpdateStatus(false)
		return
	}

	if currentRunID != lastRunID {
		fmt.Printf("健康检查: 检测到Redis重启 (run_id: %s -> %s)，detect缓存将被懒加载重建。\n", lastRunID, currentRunID)
		lastRunID = currentRunID
	}
	database.UpdateStatus(true)
}

// StartRedisHealthCheck 作为后台服务定期执行健康检查，直到收到停机信号。
func StartRedisHealthCheck(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("Redis健康检查器已启动。")

	for {
		if err := handle.Sleep(checkInterval); err != nil {
			fmt.Println("Redis健康检查器已停止。")
			return
		}
		PerformCheck()
	}
}
