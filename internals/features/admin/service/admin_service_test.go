package service

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	certService "quizku_backend/internals/features/certificates/service"
	resultModel "quizku_backend/internals/features/quiz/results/model"
	userModel "quizku_backend/internals/features/users/user/model"
	"quizku_backend/internals/helpers/apperr"
	"quizku_backend/internals/testutil"
)

type fixture struct {
	svc      *Service
	db       *gorm.DB
	ana, bob userModel.UserModel
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 10, 0, 0, 0, time.UTC)
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutil.OpenDB(t)
	store, err := certService.NewStore(t.TempDir())
	require.NoError(t, err)

	f := &fixture{
		db:  db,
		svc: New(db, certService.New(store, "http://localhost:5000")),
		ana: userModel.UserModel{UserName: "ana@example.com", Email: "ana@example.com", Password: "x"},
		bob: userModel.UserModel{UserName: "bob@example.com", Email: "bob@example.com", Password: "x"},
	}
	require.NoError(t, db.Create(&f.ana).Error)
	require.NoError(t, db.Create(&f.bob).Error)
	return f
}

func (f *fixture) result(t *testing.T, u userModel.UserModel, score, total int, at time.Time) resultModel.QuizResultModel {
	t.Helper()
	r := resultModel.QuizResultModel{UserID: u.ID, Score: score, TotalQuestions: total, Language: "go", CreatedAt: at}
	require.NoError(t, f.db.Create(&r).Error)
	return r
}

func TestAllResults(t *testing.T) {
	f := setup(t)
	f.result(t, f.ana, 3, 5, day(1))

	out, total, err := f.svc.AllResults(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, out, 2)
	assert.Equal(t, "ana@example.com", out[0].Username)
	assert.Len(t, out[0].Results, 1)
	assert.NotNil(t, out[1].Results)
	assert.Empty(t, out[1].Results)

	page, _, err := f.svc.AllResults(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "bob@example.com", page[0].Username)
}

func TestFilterResults(t *testing.T) {
	f := setup(t)
	f.result(t, f.ana, 1, 5, day(1))
	in := f.result(t, f.ana, 4, 5, day(10))
	f.result(t, f.bob, 2, 5, day(20))

	out, err := f.svc.FilterResults(context.Background(), "2024-03-05", "2024-03-10")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "ana@example.com", out[0].Username)
	require.Len(t, out[0].Results, 1)
	assert.Equal(t, in.ID, out[0].Results[0].ID)

	out, err = f.svc.FilterResults(context.Background(), "2024-03-01T00:00:00Z", "2024-03-31T00:00:00Z")
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

func TestFilterResults_Invalid(t *testing.T) {
	f := setup(t)
	cases := []struct {
		name, start, end string
		field            string
	}{
		{"missing start", "", "2024-03-10", "startDate"},
		{"garbage end", "2024-03-01", "soon", "endDate"},
		{"reversed", "2024-03-10", "2024-03-01", "endDate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.FilterResults(context.Background(), tc.start, tc.end)
			require.ErrorIs(t, err, apperr.ErrValidation)
			var ae *apperr.Error
			require.ErrorAs(t, err, &ae)
			assert.Contains(t, ae.Fields, tc.field)
		})
	}
}

func TestSearchResults(t *testing.T) {
	f := setup(t)
	f.result(t, f.bob, 2, 5, day(3))

	out, err := f.svc.SearchResults(context.Background(), "BOB")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Len(t, out[0].Results, 1)

	_, err = f.svc.SearchResults(context.Background(), "  ")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = f.svc.SearchResults(context.Background(), "zed")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUserQuizDetails(t *testing.T) {
	f := setup(t)
	f.result(t, f.ana, 5, 5, day(2))

	out, err := f.svc.UserQuizDetails(context.Background(), f.ana.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ana.ID.String(), out.ID)
	assert.Len(t, out.Results, 1)

	_, err = f.svc.UserQuizDetails(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteResult(t *testing.T) {
	f := setup(t)
	r := f.result(t, f.ana, 5, 5, day(2))

	// someone else's result is not reachable through bob
	err := f.svc.DeleteResult(context.Background(), f.bob.UserName, r.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, f.svc.DeleteResult(context.Background(), f.ana.UserName, r.ID))
	err = f.svc.DeleteResult(context.Background(), f.ana.UserName, r.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	err = f.svc.DeleteResult(context.Background(), "nobody", r.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestExportResults(t *testing.T) {
	f := setup(t)
	f.result(t, f.ana, 3, 5, day(2))

	art, err := f.svc.ExportResults(context.Background(), f.ana.UserName)
	require.NoError(t, err)
	assert.Contains(t, art.FileName, "quiz_results_")
	info, err := os.Stat(art.LocalPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	_, err = f.svc.ExportResults(context.Background(), "nobody")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSetBlocked(t *testing.T) {
	f := setup(t)

	out, err := f.svc.SetBlocked(context.Background(), f.bob.UserName, true)
	require.NoError(t, err)
	assert.True(t, out.IsBlocked)

	var stored userModel.UserModel
	require.NoError(t, f.db.First(&stored, "id = ?", f.bob.ID).Error)
	assert.True(t, stored.IsBlocked)

	out, err = f.svc.SetBlocked(context.Background(), f.bob.UserName, false)
	require.NoError(t, err)
	assert.False(t, out.IsBlocked)

	_, err = f.svc.SetBlocked(context.Background(), "nobody", true)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestStatistics(t *testing.T) {
	f := setup(t)

	st, err := f.svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, st.TotalQuizzesTaken)
	assert.Empty(t, st.TopPerformers)

	f.result(t, f.ana, 2, 5, day(1))
	f.result(t, f.ana, 4, 5, day(2))
	f.result(t, f.bob, 5, 5, day(3))

	st, err = f.svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalQuizzesTaken)
	assert.InDelta(t, 3.67, st.AverageScore, 0.001)
	require.Len(t, st.TopPerformers, 2)
	assert.Equal(t, "bob@example.com", st.TopPerformers[0].Username)
	assert.Equal(t, 4, st.TopPerformers[1].BestScore)
}
