package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/SlpAus/learning-feed-backend/internal/platform/config"
	"github.com/SlpAus/learning-feed-backend/pkg/lifecycle"
	"gorm.io/gorm"
)

// Service 负责定期创建SQLite数据库的一致性备份。
// 备份通过SQLite的VACUUM INTO语句完成，它在单条语句内生成
// 一个紧凑且事务一致的数据库副本，不会阻塞在线读写。
type Service struct {
	db       *gorm.DB
	dir      string
	interval time.Duration
	keep     int
}

// NewService 创建一个新的备份服务。
func NewService(db *gorm.DB, cfg config.BackupConfig) *Service {
	return &Service{
		db:       db,
		dir:      cfg.Dir,
		interval: cfg.Interval,
		keep:     cfg.Keep,
	}
}

// CreateConsistentBackup 立即创建一次一致性备份，并清理过期的备份文件。
func (s *Service) CreateConsistentBackup(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("无法创建备份目录 %s: %w", s.dir, err)
	}

	filename := fmt.Sprintf("learning-%s.db", time.Now().Format("20060102-150405"))
	target := filepath.Join(s.dir, filename)

	// VACUUM INTO的目标文件必须不存在
	if err := s.db.WithContext(ctx).Exec("VACUUM INTO ?", target).Error; err != nil {
		return fmt.Errorf("VACUUM INTO 执行失败: %w", err)
	}
	fmt.Printf("数据库备份已创建: %s\n", target)

	return s.pruneOldBackups()
}

// pruneOldBackups 按文件名排序删除最旧的备份，只保留最近的keep份。
// 备份文件名包含可排序的时间戳，字典序即时间序。
func (s *Service) pruneOldBackups() error {
	if s.keep <= 0 {
		return nil
	}

	entries, err := filepath.Glob(filepath.Join(s.dir, "learning-*.db"))
	if err != nil {
		return err
	}
	if len(entries) <= s.keep {
		return nil
	}

	sort.Strings(entries)
	for _, path := range entries[:len(entries)-s.keep] {
		if err := os.Remove(path); err != nil {
			fmt.Printf("警告: 无法删除过期备份 %s: %v\n", path, err)
		}
	}
	return nil
}

// Run 作为后台服务按固定间隔执行备份，直到收到停机信号。
func (s *Service) Run(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Printf("数据库备份服务已启动 (间隔 %v)。\n", s.interval)

	for {
		if err := handle.Sleep(s.interval); err != nil {
			fmt.Println("数据库备份服务已停止。")
			return
		}
		if err := s.CreateConsistentBackup(handle.Ctx()); err != nil {
			fmt.Printf("警告: 定期备份失败: %v\n", err)
		}
	}
}
