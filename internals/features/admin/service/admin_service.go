package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"quizku_backend/internals/features/admin/dto"
	certService "quizku_backend/internals/features/certificates/service"
	resultModel "quizku_backend/internals/features/quiz/results/model"
	resultRepo "quizku_backend/internals/features/quiz/results/repository"
	resultService "quizku_backend/internals/features/quiz/results/service"
	authRepo "quizku_backend/internals/features/users/auth/repository"
	userModel "quizku_backend/internals/features/users/user/model"
	"quizku_backend/internals/helpers/apperr"
	"quizku_backend/internals/logger"
)

type Service struct {
	DB      *gorm.DB
	Reports *certService.Service
	log     *logrus.Entry
}

func New(db *gorm.DB, reports *certService.Service) *Service {
	return &Service{
		DB:      db,
		Reports: reports,
		log:     logger.L().WithField("component", "admin"),
	}
}

func (s *Service) withResults(db *gorm.DB, users []userModel.UserModel) ([]dto.AccountResults, error) {
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	byUser, err := resultRepo.ListByUsers(db, ids)
	if err != nil {
		return nil, apperr.Internal("failed to load results", err)
	}
	out := make([]dto.AccountResults, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToAccountResults(u, byUser[u.ID]))
	}
	return out, nil
}

func (s *Service) findByUsername(db *gorm.DB, username string) (*userModel.UserModel, error) {
	user, err := authRepo.FindUserByUsername(db, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	return user, nil
}

/* =========================================================
   Results
========================================================= */

// AllResults lists accounts with their results. limit <= 0 returns everyone.
func (s *Service) AllResults(ctx context.Context, offset, limit int) ([]dto.AccountResults, int64, error) {
	db := s.DB.WithContext(ctx)
	users, total, err := authRepo.ListUsers(db, offset, limit)
	if err != nil {
		return nil, 0, apperr.Internal("failed to load users", err)
	}
	out, err := s.withResults(db, users)
	return out, total, err
}

// parseDateBound accepts RFC3339 or YYYY-MM-DD. A bare end date covers the
// whole day. The returned string is the violation, empty when ok.
func parseDateBound(raw string, end bool) (time.Time, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, "is required"
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), ""
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, "must be RFC3339 or YYYY-MM-DD"
	}
	if end {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t.UTC(), ""
}

// FilterResults returns accounts with at least one result in [start, end],
// carrying only those results.
func (s *Service) FilterResults(ctx context.Context, startRaw, endRaw string) ([]dto.AccountResults, error) {
	var v apperr.Violations
	start, msg := parseDateBound(startRaw, false)
	if msg != "" {
		v.Add("startDate", msg)
	}
	end, msg := parseDateBound(endRaw, true)
	if msg != "" {
		v.Add("endDate", msg)
	}
	if v.Empty() && end.Before(start) {
		v.Add("endDate", "must not be before startDate")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	rows, err := resultRepo.FilterByDate(db, start, end)
	if err != nil {
		return nil, apperr.Internal("failed to filter results", err)
	}
	byUser := make(map[uuid.UUID][]resultModel.QuizResultModel)
	ids := make([]uuid.UUID, 0)
	for _, r := range rows {
		if _, ok := byUser[r.UserID]; !ok {
			ids = append(ids, r.UserID)
		}
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}
	users, err := authRepo.FindUsersByIDs(db, ids)
	if err != nil {
		return nil, apperr.Internal("failed to load users", err)
	}
	out := make([]dto.AccountResults, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToAccountResults(u, byUser[u.ID]))
	}
	return out, nil
}

// SearchResults matches usernames case-insensitively by fragment.
func (s *Service) SearchResults(ctx context.Context, username string) ([]dto.AccountResults, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apperr.Invalid("username", "Username is required")
	}
	db := s.DB.WithContext(ctx)
	users, err := authRepo.SearchUsers(db, username)
	if err != nil {
		return nil, apperr.Internal("failed to search users", err)
	}
	if len(users) == 0 {
		return nil, apperr.NotFound("User not found")
	}
	return s.withResults(db, users)
}

// UserQuizDetails is one account by id with its results.
func (s *Service) UserQuizDetails(ctx context.Context, userID uuid.UUID) (*dto.AccountResults, error) {
	db := s.DB.WithContext(ctx)
	user, err := authRepo.FindUserByID(db, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	out, err := s.withResults(db, []userModel.UserModel{*user})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *Service) DeleteResult(ctx context.Context, username string, resultID uuid.UUID) error {
	db := s.DB.WithContext(ctx)
	user, err := s.findByUsername(db, username)
	if err != nil {
		return err
	}
	err = resultRepo.Remove(db, user.ID, resultID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("Quiz result not found for this user")
	}
	if err != nil {
		return apperr.Internal("failed to delete quiz result", err)
	}
	s.log.WithFields(logrus.Fields{"username": user.UserName, "result_id": resultID}).Info("quiz result deleted")
	return nil
}

// ExportResults renders the results report for username. The caller streams
// and then discards the file.
func (s *Service) ExportResults(ctx context.Context, username string) (certService.Artifact, error) {
	db := s.DB.WithContext(ctx)
	user, err := s.findByUsername(db, username)
	if err != nil {
		return certService.Artifact{}, err
	}
	results, err := resultRepo.ListByUser(db, user.ID)
	if err != nil {
		return certService.Artifact{}, apperr.Internal("failed to load results", err)
	}
	rows := make([]certService.ReportRow, 0, len(results))
	for _, r := range results {
		rows = append(rows, certService.ReportRow{
			Language: r.Language,
			Score:    r.Score,
			Total:    r.TotalQuestions,
			Date:     r.CreatedAt,
		})
	}
	return s.Reports.GenerateResultsReport(ctx, user.UserName, rows)
}

/* =========================================================
   Accounts
========================================================= */

func (s *Service) SetBlocked(ctx context.Context, username string, blocked bool) (*dto.BlockResponse, error) {
	user, err := authRepo.SetBlocked(s.DB.WithContext(ctx), username, blocked)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to update user", err)
	}
	s.log.WithFields(logrus.Fields{"username": user.UserName, "blocked": blocked}).Info("block status changed")
	return &dto.BlockResponse{Username: user.UserName, IsBlocked: user.IsBlocked}, nil
}

/* =========================================================
   Statistics
========================================================= */

func (s *Service) Statistics(ctx context.Context) (resultService.Statistics, error) {
	db := s.DB.WithContext(ctx)
	users, _, err := authRepo.ListUsers(db, 0, 0)
	if err != nil {
		return resultService.Statistics{}, apperr.Internal("failed to load users", err)
	}
	all, err := resultRepo.All(db)
	if err != nil {
		return resultService.Statistics{}, apperr.Internal("failed to load results", err)
	}
	byUser := make(map[uuid.UUID][]resultModel.QuizResultModel, len(users))
	for _, r := range all {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}
	accounts := make([]resultService.Account, 0, len(users))
	for _, u := range users {
		accounts = append(accounts, resultService.Account{ID: u.ID, Username: u.UserName})
	}
	return resultService.ComputeStatistics(accounts, byUser), nil
}
