package content

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNotFound 表示目标内容不存在，由handler层翻译为404。
var ErrNotFound = errors.New("内容不存在")

// Repository 是内容表的数据访问层。
// 它在进程启动时构造一次，并通过依赖注入传递给需要它的模块，
// 不使用包级的全局实例。
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建一个新的内容仓库。
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create 插入一条新内容。ID、DateAdded和TimesSurfaced由仓库统一分配，
// 调用方传入的这些字段会被忽略。
func (r *Repository) Create(item *ContentItem) error {
	item.ID = 0
	item.DateAdded = time.Now()
	item.LastEdited = nil
	item.TimesSurfaced = 0
	return r.db.Create(item).Error
}

// GetByID 按主键查询单条内容。
func (r *Repository) GetByID(id uint) (*ContentItem, error) {
	var item ContentItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Update 将给定的字段合并到内容记录中，并返回更新后的完整记录。
// changes的键是数据库列名。
func (r *Repository) Update(id uint, changes map[string]interface{}) (*ContentItem, error) {
	if len(changes) == 0 {
		return r.GetByID(id)
	}

	res := r.db.Model(&ContentItem{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

// Delete 删除一条内容。删除不存在的ID会返回ErrNotFound。
func (r *Repository) Delete(id uint) error {
	res := r.db.Delete(&ContentItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementSurfaced 将曝光计数加1并返回更新后的记录。
// 计数通过单条UPDATE表达式完成，并发的两次曝光不会丢失更新。
func (r *Repository) IncrementSurfaced(id uint) (*ContentItem, error) {
	res := r.db.Model(&ContentItem{}).Where("id = ?", id).
		UpdateColumn("times_surfaced", gorm.Expr("times_surfaced + 1"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

// AdjustPriority 将优先级加上delta并返回更新后的记录。
// 与IncrementSurfaced相同，必须是单条原子UPDATE：
// 两个并发的+1如果读改写分离，会丢失其中一次。
func (r *Repository) AdjustPriority(id uint, delta int) (*ContentItem, error) {
	res := r.db.Model(&ContentItem{}).Where("id = ?", id).
		UpdateColumn("priority", gorm.Expr("priority + ?", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(id)
}

// ListActive 返回所有未完成的内容，按优先级降序排列，
// 同优先级时按加入时间降序，保证排序结果确定。
// difficulty非空时只保留该难度与未设置难度的内容。
func (r *Repository) ListActive(difficulty string) ([]ContentItem, error) {
	q := r.db.Where("status <> ?", StatusCompleted)
	if difficulty != "" {
		// 未设置难度的内容视为通配，任何专注度下都保留。
		// 显式的括号保证OR组不会破坏与status条件的AND优先级。
		q = q.Where("(difficulty = ? OR difficulty = '' OR difficulty IS NULL)", difficulty)
	}

	items := []ContentItem{}
	if err := q.Order("priority DESC, date_added DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count 返回内容表中的记录总数。
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&ContentItem{}).Count(&count).Error
	return count, err
}
