package stats

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository 是用户统计数据的数据访问层，进程启动时构造一次并注入。
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建一个新的统计仓库。
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetOrCreate 返回唯一的统计记录，首次读取时以全零计数器懒加载创建。
func (r *Repository) GetOrCreate() (*UserStats, error) {
	return getOrCreate(r.db)
}

// getOrCreate 在给定的数据库句柄（可以是事务）上读取或创建统计记录。
func getOrCreate(tx *gorm.DB) (*UserStats, error) {
	var s UserStats
	err := tx.First(&s, singletonID).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	s = UserStats{ID: singletonID}
	if err := tx.Create(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// ApplyCompletion 将一次完成事件的统计增量写入统计记录。
// 必须在内容完成事务内调用：只有内容记录的状态迁移成功提交时，
// 这里的增量才会一起生效，保证不会出现只加经验不改状态的中间态。
func (r *Repository) ApplyCompletion(tx *gorm.DB, minutes int, now time.Time) error {
	s, err := getOrCreate(tx)
	if err != nil {
		return err
	}

	s.TotalItemsCompleted++
	s.TotalMinutesLearned += minutes
	s.XPTotal += XPPerCompletion

	s.CurrentStreak = nextStreak(s.LastActiveDate, s.CurrentStreak, now)
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	active := now
	s.LastActiveDate = &active

	return tx.Save(s).Error
}
