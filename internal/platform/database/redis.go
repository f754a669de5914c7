package database

import (
	"context"
	"fmt"

	"github.com/SlpAus/learning-feed-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

// RDB 是detect缓存使用的Redis客户端。
// 配置中禁用Redis时保持为nil，识别流程整体退回离线路径。
var RDB *redis.Client

// Ctx 供不携带请求上下文的Redis操作使用
var Ctx = context.Background()

// InitRedis 按配置建立Redis连接。
// Redis在本项目中只承担detect元数据缓存，连接失败不阻止应用启动。
func InitRedis(cfg config.RedisConfig) {
	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		fmt.Println("警告: 无法连接到Redis，detect缓存将被禁用:", err)
		UpdateStatus(false)
		return
	}

	fmt.Println("Redis连接成功。")
}
