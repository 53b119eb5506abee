package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kaanoztekin99/3d-object-generation/internal/config"
	"github.com/kaanoztekin99/3d-object-generation/internal/model"
	"github.com/kaanoztekin99/3d-object-generation/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) *ResponseRepository {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "survey.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewResponseRepository(db)
}

func TestCreateBatch(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	demo := model.Demographics{Name: "Alice", Gender: "F", Age: "25", Experience: "Beginner"}
	rows := []model.SubmissionRow{
		{Demographics: demo, QuestionID: "q1", Model: "Model A", Rating: "4"},
		{Demographics: demo, QuestionID: "q1", Model: "Model B", Rating: "5"},
	}
	require.NoError(t, repo.CreateBatch(ctx, "sub-1", rows))
	require.NoError(t, repo.CreateBatch(ctx, "sub-2", rows[:1]))
	require.NoError(t, repo.CreateBatch(ctx, "sub-3", nil))

	n, err := repo.CountBySubmission(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.CountBySubmission(ctx, "sub-2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var stored model.SurveyResponse
	require.NoError(t, repo.DB.Where("submission_id = ? AND model = ?", "sub-1", "Model B").First(&stored).Error)
	assert.Equal(t, "Beginner", stored.Experience3D)
	assert.Equal(t, "5", stored.Rating)
}

func TestPing(t *testing.T) {
	assert.NoError(t, newRepository(t).Ping(context.Background()))
}

func TestInitDBDisabled(t *testing.T) {
	db, err := database.InitDB(&config.DatabaseConfig{})
	require.NoError(t, err)
	assert.Nil(t, db)
}
