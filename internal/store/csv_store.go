package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kaanoztekin99/3d-object-generation/internal/lock"
	"github.com/kaanoztekin99/3d-object-generation/internal/model"
	"github.com/kaanoztekin99/3d-object-generation/internal/util"
	"github.com/kaanoztekin99/3d-object-generation/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// CSVStore 只追加的结果文件. 表头只在文件不存在时写一次.
type CSVStore struct {
	path   string
	header []string
	locker lock.Locker
}

func NewCSVStore(path string, locker lock.Locker) *CSVStore {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	return &CSVStore{
		path:   path,
		header: model.CSVHeader,
		locker: locker,
	}
}

func (s *CSVStore) Path() string {
	return s.path
}

// Append 持锁后确保表头存在, 再用一次写入追加全部行
func (s *CSVStore) Append(ctx context.Context, records [][]string) error {
	ctx, span := tracing.Tracer.Start(ctx, "csv.append")
	defer span.End()
	span.SetAttributes(attribute.Int("csv.rows", len(records)))

	unlock, err := s.locker.Lock(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "lock")
		return fmt.Errorf("acquire csv lock: %w", err)
	}
	defer unlock()

	if err := s.ensureHeader(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "header")
		return err
	}

	if len(records) == 0 {
		return nil
	}

	data, err := encode(records)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("open %s: %w", s.path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		span.RecordError(err)
		span.SetStatus(codes.Error, "write")
		return fmt.Errorf("append %s: %w", s.path, err)
	}
	return f.Close()
}

// ensureHeader 表头先写入同目录的临时文件, 再用 link 原子地放到目标路径;
// 目标已存在时 link 失败, 表头不会重复.
func (s *CSVStore) ensureHeader() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}

	data, err := encode([][]string{s.header})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create header file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if err := os.Link(tmpName, s.path); err != nil && !os.IsExist(err) {
		return fmt.Errorf("publish %s: %w", s.path, err)
	}
	return nil
}

// Open 导出和归档时读取整个文件
func (s *CSVStore) Open() (io.ReadCloser, int64, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, util.ErrResultsNotFound
		}
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, info.Size(), nil
}

// Writable 健康检查: 目录可写
func (s *CSVStore) Writable() error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".probe.*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	tmp.Close()
	return os.Remove(name)
}

// encode 逗号, 引号和换行会被加引号转义
func encode(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}
