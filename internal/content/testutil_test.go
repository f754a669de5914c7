package content

import (
	"fmt"
	"testing"

	"github.com/SlpAus/learning-feed-backend/internal/stats"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 为单个测试创建一个独立的内存数据库。
// 命名的共享缓存保证gorm连接池里的多个连接看到同一个库。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("无法打开内存数据库: %v", err)
	}

	if err := db.AutoMigrate(&ContentItem{}, &stats.UserStats{}); err != nil {
		t.Fatalf("无法迁移表结构: %v", err)
	}
	return db
}

// newTestService 构造绑定在同一个测试数据库上的仓库与服务
func newTestService(t *testing.T) (*gorm.DB, *Repository, *Service, *stats.Repository) {
	t.Helper()

	db := newTestDB(t)
	repo := NewRepository(db)
	statsRepo := stats.NewRepository(db)
	return db, repo, NewService(db, repo, statsRepo), statsRepo
}
