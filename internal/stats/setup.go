package stats

import (
	"fmt"

	"gorm.io/gorm"
)

// PrimeDB 负责初始化stats模块的数据库表结构。
// 统计记录本身是懒加载的，这里只做迁移。
func PrimeDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&UserStats{}); err != nil {
		return fmt.Errorf("无法迁移user_stats表: %w", err)
	}
	fmt.Println("UserStats数据库表迁移成功。")
	return nil
}
