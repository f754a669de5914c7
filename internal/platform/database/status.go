package database

import (
	"fmt"
	"sync"
)

var statusMu sync.RWMutex

// cacheAvailable 表示detect缓存当前是否可用。
// 由健康检查器维护，所有读写Redis的代码在操作前都应检查它。
var cacheAvailable = true

// IsRedisHealthy 返回detect缓存当前是否可用。
// Redis被禁用（RDB为nil）时恒为false，调用方直接走离线路径。
func IsRedisHealthy() bool {
	if RDB == nil {
		return false
	}
	statusMu.RLock()
	defer statusMu.RUnlock()
	return cacheAvailable
}

// UpdateStatus 更新缓存的可用状态，只在状态翻转时打印日志。
func UpdateStatus(healthy bool) {
	statusMu.Lock()
	defer statusMu.Unlock()

	if cacheAvailable == healthy {
		return
	}
	cacheAvailable = healthy
	if healthy {
		fmt.Println("detect缓存已恢复可用。")
	} else {
		fmt.Println("警告: detect缓存不可用，URL识别退回离线结果。")
	}
}
