package storage

import (
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 孤儿文件保留期，避免清掉刚写入、记录尚未落库的文件
const sweepGracePeriod = 24 * time.Hour

// Sweeper 定期清理存储目录中不再被任何记录引用的文件
// 文件删除和记录写入不在一个事务里，进程中途崩溃会留下孤儿文件
type Sweeper struct {
	db    *gorm.DB
	store *Local
	log   *zap.SugaredLogger
	cron  *cron.Cron
}

// NewSweeper 创建清理任务
func NewSweeper(db *gorm.DB, store *Local, log *zap.SugaredLogger) *Sweeper {
	return &Sweeper{
		db:    db,
		store: store,
		log:   log,
		cron:  cron.New(),
	}
}

// Start 注册并启动每小时一次的清理任务
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc("@hourly", func() {
		if err := s.Sweep(); err != nil {
			s.log.Errorf("清理孤儿文件失败: %v", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop 停止清理任务
func (s *Sweeper) Stop() {
	s.cron.Stop()
}

// Sweep 扫描categories与posts目录，删除未被引用且超过保留期的文件
// post_images目录存放编辑器散图，没有落库记录，不参与清理
func (s *Sweeper) Sweep() error {
	targets := []struct {
		dir   string
		table string
	}{
		{DirCategories, "categories"},
		{DirPosts, "posts"},
	}

	for _, t := range targets {
		var names []string
		if err := s.db.Table(t.table).Pluck("image", &names).Error; err != nil {
			return err
		}

		referenced := make(map[string]struct{}, len(names))
		for _, name := range names {
			referenced[name] = struct{}{}
		}

		dir := filepath.Join(s.store.Root(), t.dir)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if _, ok := referenced[entry.Name()]; ok {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if time.Since(info.ModTime()) < sweepGracePeriod {
				continue
			}
			if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
				s.log.Warnf("删除孤儿文件失败 %s: %v", entry.Name(), err)
				continue
			}
			s.log.Infof("已删除孤儿文件: %s/%s", t.dir, entry.Name())
		}
	}

	return nil
}
