package database

import (
	"fmt"

	"github.com/SlpAus/learning-feed-backend/internal/platform/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 是全局的SQLite连接，存放全部学习内容与统计数据
var DB *gorm.DB

// InitDB 打开内容库。打不开数据库时应用没有任何可做的事，直接panic。
func InitDB(cfg config.SqliteConfig) {
	var err error
	DB, err = gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("无法打开内容库 %s: %v", cfg.Path, err))
	}

	fmt.Printf("内容库已打开: %s\n", cfg.Path)
}
