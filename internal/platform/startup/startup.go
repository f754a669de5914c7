package startup

import (
	"fmt"

	"github.com/SlpAus/learning-feed-backend/internal/content"
	"github.com/SlpAus/learning-feed-backend/internal/stats"
	"gorm.io/gorm"
)

// InitializeApplication 是应用首次启动时执行的总入口。
// 按依赖顺序初始化各模块的数据库结构。
func InitializeApplication(db *gorm.DB, contentRepo *content.Repository) error {
	fmt.Println("开始应用首次初始化...")

	if err := stats.PrimeDB(db); err != nil {
		return err
	}
	if err := content.PrimeDB(db, contentRepo); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}
