package content

import (
	"fmt"

	"gorm.io/gorm"
)

// PrimeDB 负责初始化content模块：迁移表结构，并在空库中写入示例内容。
func PrimeDB(db *gorm.DB, repo *Repository) error {
	if err := db.AutoMigrate(&ContentItem{}); err != nil {
		return fmt.Errorf("无法迁移content_items表: %w", err)
	}
	fmt.Println("ContentItem数据库表迁移成功。")

	return seedIfEmpty(repo)
}

// seedIfEmpty 在首次启动的空表中插入一条示例内容，
// 让新用户的Feed不至于完全空白。
func seedIfEmpty(repo *Repository) error {
	count, err := repo.Count()
	if err != nil {
		return fmt.Errorf("无法统计内容数量: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := ContentItem{
		Title:            "Understanding Dopamine Detox",
		Type:             TypeYouTube,
		URL:              "https://www.youtube.com/watch?v=9QiE-M1LrZk",
		ThumbnailURL:     "https://img.youtube.com/vi/9QiE-M1LrZk/hqdefault.jpg",
		PlatformName:     "YouTube",
		EstimatedMinutes: 15,
		Difficulty:       DifficultyLight,
		Tags:             []string{"psychology", "productivity"},
		Status:           StatusUnseen,
	}
	if err := repo.Create(&seed); err != nil {
		return fmt.Errorf("无法写入示例内容: %w", err)
	}
	fmt.Println("已写入示例内容。")
	return nil
}
