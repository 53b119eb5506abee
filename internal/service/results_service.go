package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kaanoztekin99/3d-object-generation/internal/model"
	"github.com/kaanoztekin99/3d-object-generation/internal/util"
	"github.com/kaanoztekin99/3d-object-generation/pkg/logger"
	"github.com/kaanoztekin99/3d-object-generation/pkg/monitoring"
	"go.uber.org/zap"
)

// RowAppender 结果文件
type RowAppender interface {
	Append(ctx context.Context, records [][]string) error
	Open() (io.ReadCloser, int64, error)
}

// ResponseMirror 可选的数据库镜像
type ResponseMirror interface {
	CreateBatch(ctx context.Context, submissionID string, rows []model.SubmissionRow) error
}

// RowError 第 Index 行不合法
type RowError struct {
	Index  int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%v %d: %s", util.ErrInvalidRow, e.Index, e.Reason)
}

func (e *RowError) Unwrap() error {
	return util.ErrInvalidRow
}

type ResultsService struct {
	store  RowAppender
	mirror ResponseMirror
}

// NewResultsService mirror 可以为 nil
func NewResultsService(store RowAppender, mirror ResponseMirror) *ResultsService {
	return &ResultsService{store: store, mirror: mirror}
}

// Save 校验后追加; 任何一行不合法时什么都不写
func (s *ResultsService) Save(ctx context.Context, raw json.RawMessage) (int, error) {
	records, err := ParseRows(raw)
	if err != nil {
		monitoring.SaveFailures.WithLabelValues("invalid").Inc()
		return 0, err
	}

	if err := s.store.Append(ctx, records); err != nil {
		monitoring.SaveFailures.WithLabelValues("storage").Inc()
		logger.Log.Error("Save error", zap.Error(err))
		return 0, fmt.Errorf("%w: %v", util.ErrSaveFailed, err)
	}
	monitoring.RowsAppended.Add(float64(len(records)))

	if s.mirror != nil && len(records) > 0 {
		rows := make([]model.SubmissionRow, len(records))
		for i, rec := range records {
			rows[i] = model.RowFromRecord(rec)
		}
		submissionID := model.GenerateUUID()
		if err := s.mirror.CreateBatch(ctx, submissionID, rows); err != nil {
			logger.Log.Warn("mirror rows to database",
				zap.String("submission", submissionID),
				zap.Int("rows", len(rows)),
				zap.Error(err),
			)
		}
	}

	return len(records), nil
}

// Export 打开结果文件供下载
func (s *ResultsService) Export() (io.ReadCloser, int64, error) {
	return s.store.Open()
}

// ParseRows rows 必须是数组, 每行是 7 个标量. 字符串原样保留, 数字保留 JSON 字面量, null 为空串.
func ParseRows(raw json.RawMessage) ([][]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, util.ErrRowsMissing
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, util.ErrRowsMissing
	}

	records := make([][]string, len(items))
	for i, item := range items {
		var cells []json.RawMessage
		if err := json.Unmarshal(item, &cells); err != nil {
			return nil, &RowError{Index: i, Reason: "not an array"}
		}
		if len(cells) != model.RowArity {
			return nil, &RowError{Index: i, Reason: fmt.Sprintf("expected %d fields, got %d", model.RowArity, len(cells))}
		}

		rec := make([]string, len(cells))
		for j, cell := range cells {
			v, err := scalar(cell)
			if err != nil {
				return nil, &RowError{Index: i, Reason: fmt.Sprintf("field %d: %v", j, err)}
			}
			rec[j] = v
		}
		records[i] = rec
	}
	return records, nil
}

func scalar(cell json.RawMessage) (string, error) {
	cell = bytes.TrimSpace(cell)
	if len(cell) == 0 {
		return "", fmt.Errorf("empty value")
	}
	switch cell[0] {
	case '"':
		var s string
		if err := json.Unmarshal(cell, &s); err != nil {
			return "", err
		}
		return s, nil
	case 'n':
		return "", nil
	case '{', '[':
		return "", fmt.Errorf("not a scalar")
	default:
		// 数字和布尔值保留原始写法
		return string(cell), nil
	}
}
