package repository

import (
	"context"

	"github.com/kaanoztekin99/3d-object-generation/internal/model"
	"gorm.io/gorm"
)

type ResponseRepository struct {
	DB *gorm.DB
}

// NewResponseRepository 创建结果镜像仓库
func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

// CreateBatch 同一次提交的行在一个事务里写入
func (r *ResponseRepository) CreateBatch(ctx context.Context, submissionID string, rows []model.SubmissionRow) error {
	if len(rows) == 0 {
		return nil
	}
	responses := make([]model.SurveyResponse, len(rows))
	for i, row := range rows {
		responses[i] = model.NewSurveyResponse(submissionID, row)
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(responses, 100).Error
	})
}

// CountBySubmission 一次提交写入了多少行
func (r *ResponseRepository) CountBySubmission(ctx context.Context, submissionID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.SurveyResponse{}).
		Where("submission_id = ?", submissionID).
		Count(&count).Error
	return count, err
}

func (r *ResponseRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
