package service

import (
	"context"
	"errors"
	"io"
	"path"
	"time"

	"github.com/kaanoztekin99/3d-object-generation/internal/util"
	"github.com/kaanoztekin99/3d-object-generation/pkg/logger"
	"github.com/kaanoztekin99/3d-object-generation/pkg/monitoring"
	"go.uber.org/zap"
)

// ArchiveService 把结果文件的快照上传到存储
type ArchiveService struct {
	store    RowAppender
	provider StorageProvider
	prefix   string
	now      func() time.Time
}

func NewArchiveService(store RowAppender, provider StorageProvider, prefix string) *ArchiveService {
	return &ArchiveService{
		store:    store,
		provider: provider,
		prefix:   prefix,
		now:      time.Now,
	}
}

// Archive 返回快照地址; 还没有结果时返回 util.ErrResultsNotFound
func (s *ArchiveService) Archive(ctx context.Context) (string, error) {
	f, size, err := s.store.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	name := path.Join(s.prefix, s.now().UTC().Format(util.ArchiveFormat)+".csv")
	// 追加可能仍在进行, 只上传打开时的长度
	url, err := s.provider.Upload(ctx, name, io.LimitReader(f, size), size, util.MimeCSV)
	if err != nil {
		monitoring.Archives.WithLabelValues("failure").Inc()
		return "", err
	}
	monitoring.Archives.WithLabelValues("success").Inc()
	return url, nil
}

// Run 每 interval 归档一次, ctx 取消时退出
func (s *ArchiveService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			url, err := s.Archive(ctx)
			switch {
			case errors.Is(err, util.ErrResultsNotFound):
			case err != nil:
				logger.Log.Error("archive results", zap.Error(err))
			default:
				logger.Log.Info("results archived", zap.String("url", url))
			}
		}
	}
}
