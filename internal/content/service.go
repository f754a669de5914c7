package content

import (
	"errors"
	"time"

	"github.com/SlpAus/learning-feed-backend/internal/stats"
	"gorm.io/gorm"
)

// ErrInvalidFocus 表示调用方传入了不认识的专注度档位。
var ErrInvalidFocus = errors.New("无效的专注度档位")

// Service 承载内容模块的业务逻辑：Feed查询与生命周期迁移。
// 它持有数据库句柄用于开启事务，统计仓库用于完成事件的副作用。
type Service struct {
	db    *gorm.DB
	repo  *Repository
	stats *stats.Repository
}

// NewService 创建一个新的内容服务。
func NewService(db *gorm.DB, repo *Repository, statsRepo *stats.Repository) *Service {
	return &Service{db: db, repo: repo, stats: statsRepo}
}

// Feed 返回呈现给用户的工作集：
// 排除已完成的内容，按专注度过滤难度，按优先级降序排列。
// 空结果是合法的，表示用户已经清空了待学清单。
func (s *Service) Feed(focus string) ([]ContentItem, error) {
	if focus == "" {
		return s.repo.ListActive("")
	}

	difficulty, ok := focusToDifficulty[focus]
	if !ok {
		return nil, ErrInvalidFocus
	}
	return s.repo.ListActive(difficulty)
}

// Edit 应用一次普通的内容编辑。
// contentEdited为true时刷新lastEdited时间戳；
// 纯生命周期字段（status/progressPercent）的变化不算内容编辑。
// 把已完成的内容改回未完成状态时，撤销完成痕迹：
// dateCompleted清空，进度在调用方未显式给出时归零，
// 维持 dateCompleted非空 当且仅当 status==completed 的不变量。
func (s *Service) Edit(id uint, changes map[string]interface{}, contentEdited bool) (*ContentItem, error) {
	if contentEdited {
		changes["last_edited"] = time.Now()
	}

	if st, ok := changes["status"].(string); ok && st != StatusCompleted {
		current, err := s.repo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if current.Status == StatusCompleted {
			changes["date_completed"] = nil
			if _, ok := changes["progress_percent"]; !ok {
				changes["progress_percent"] = 0
			}
		}
	}

	return s.repo.Update(id, changes)
}

// Complete 执行 * -> completed 的状态迁移及其全部副作用。
// 记录字段与统计增量在同一个事务中提交：内容更新失败时统计不会变化。
// 对已完成内容的重复调用在记录层面是幂等的，统计增量只在
// 未完成 -> 完成 的边沿上生效，不会重复累计经验或连续天数。
func (s *Service) Complete(id uint, note *string, changes map[string]interface{}, contentEdited bool) (*ContentItem, error) {
	now := time.Now()
	var updated ContentItem

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item ContentItem
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		alreadyCompleted := item.Status == StatusCompleted

		merged := make(map[string]interface{}, len(changes)+4)
		for k, v := range changes {
			merged[k] = v
		}
		merged["status"] = StatusCompleted
		merged["progress_percent"] = 100
		if !alreadyCompleted {
			// dateCompleted只在首次完成时设置一次
			merged["date_completed"] = now
		}
		if note != nil {
			// 完成笔记覆盖之前的内容
			merged["user_note"] = *note
			contentEdited = true
		}
		// 随完成请求一并提交的纯生命周期字段（如priority）不算内容编辑
		if contentEdited {
			merged["last_edited"] = now
		}

		if err := tx.Model(&ContentItem{}).Where("id = ?", id).Updates(merged).Error; err != nil {
			return err
		}

		if !alreadyCompleted {
			minutes := item.EstimatedMinutes // 未设置时为0
			if err := s.stats.ApplyCompletion(tx, minutes, now); err != nil {
				return err
			}
		}

		return tx.First(&updated, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
