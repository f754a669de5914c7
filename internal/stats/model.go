package stats

import "time"

// XPPerCompletion 是每完成一条内容获得的固定经验值奖励
const XPPerCompletion = 150

// singletonID 是user_stats表中唯一一行的主键。
// 这张表在逻辑上只有一条记录，懒加载创建，永不删除。
const singletonID = 1

// UserStats 定义了用户的聚合统计数据。
// 除streak外的所有计数器都是单调不减的，只会被完成事件增加。
type UserStats struct {
	ID uint `gorm:"primarykey" json:"id"`

	// CurrentStreak 是当前连续学习天数，任何更新后都满足
	// CurrentStreak <= LongestStreak
	CurrentStreak int `gorm:"not null;default:0" json:"currentStreak"`

	// LongestStreak 是历史最长连续学习天数
	LongestStreak int `gorm:"not null;default:0" json:"longestStreak"`

	// TotalItemsCompleted 是累计完成的内容条数
	TotalItemsCompleted int `gorm:"not null;default:0" json:"totalItemsCompleted"`

	// TotalMinutesLearned 是累计学习分钟数，按内容的预计时长累加
	TotalMinutesLearned int `gorm:"not null;default:0" json:"totalMinutesLearned"`

	// LastActiveDate 是最近一次完成事件的时间
	LastActiveDate *time.Time `json:"lastActiveDate"`

	// XPTotal 是累计经验值
	XPTotal int `gorm:"column:xp_total;not null;default:0" json:"xpTotal"`
}

// TableName 固定表名，避免gorm把XP前缀复数化出意外的名字
func (UserStats) TableName() string {
	return "user_stats"
}
