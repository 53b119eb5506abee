package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/url"
	"testing"

	"github.com/kaanoztekin99/3d-object-generation/internal/model"
	"github.com/kaanoztekin99/3d-object-generation/internal/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubmitter struct {
	calls int
	rows  []model.SubmissionRow
	err   error
}

func (r *recordingSubmitter) Submit(ctx context.Context, rows []model.SubmissionRow) error {
	r.calls++
	r.rows = rows
	return r.err
}

func newSurveyService(sub RowSubmitter) *SurveyService {
	return NewSurveyService(survey.DefaultCatalog(), survey.NewRandomizer(rand.NewPCG(1, 2)), sub)
}

func TestSubmitFormSendsAllRowsOnce(t *testing.T) {
	sub := &recordingSubmitter{}
	s := newSurveyService(sub)

	form := url.Values{
		model.FieldName:       {"Alice"},
		model.FieldGender:     {"F"},
		model.FieldAge:        {"25"},
		model.FieldExperience: {"Beginner"},
	}
	for _, a := range s.Assignments() {
		form.Set(a.Left().Field, "4")
		form.Set(a.Right().Field, "5")
	}

	n, err := s.SubmitForm(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, 2*s.Catalog().Len(), n)
	assert.Equal(t, 1, sub.calls)
	assert.Len(t, sub.rows, n)
}

func TestSubmitFormPropagatesFailure(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("save endpoint down")}
	s := newSurveyService(sub)

	_, err := s.SubmitForm(context.Background(), url.Values{"q1_Model A": {"3"}})
	assert.EqualError(t, err, "save endpoint down")
	assert.Equal(t, 1, sub.calls)
}
