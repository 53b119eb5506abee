package service

import (
	"context"
	"net/url"

	"github.com/kaanoztekin99/3d-object-generation/internal/model"
	"github.com/kaanoztekin99/3d-object-generation/internal/survey"
	"github.com/kaanoztekin99/3d-object-generation/pkg/logger"
	"github.com/kaanoztekin99/3d-object-generation/pkg/monitoring"
	"go.uber.org/zap"
)

// RowSubmitter 把行发送到保存接口
type RowSubmitter interface {
	Submit(ctx context.Context, rows []model.SubmissionRow) error
}

// SurveyService 页面渲染和表单提交
type SurveyService struct {
	catalog    *survey.Catalog
	randomizer *survey.Randomizer
	submitter  RowSubmitter
}

func NewSurveyService(catalog *survey.Catalog, randomizer *survey.Randomizer, submitter RowSubmitter) *SurveyService {
	return &SurveyService{
		catalog:    catalog,
		randomizer: randomizer,
		submitter:  submitter,
	}
}

func (s *SurveyService) Catalog() *survey.Catalog {
	return s.catalog
}

// Assignments 每次页面加载重新抽取
func (s *SurveyService) Assignments() []survey.Assignment {
	return s.randomizer.Assign(s.catalog)
}

// SubmitForm 由表单构造行并一次性提交, 返回提交的行数
func (s *SurveyService) SubmitForm(ctx context.Context, form url.Values) (int, error) {
	rows := survey.BuildRows(form)

	if err := s.submitter.Submit(ctx, rows); err != nil {
		monitoring.Submissions.WithLabelValues("failure").Inc()
		logger.Log.Warn("survey submission failed", zap.Int("rows", len(rows)), zap.Error(err))
		return 0, err
	}

	monitoring.Submissions.WithLabelValues("success").Inc()
	if expected := 2 * s.catalog.Len(); len(rows) != expected {
		logger.Log.Info("partial survey submission", zap.Int("rows", len(rows)), zap.Int("expected", expected))
	}
	return len(rows), nil
}
