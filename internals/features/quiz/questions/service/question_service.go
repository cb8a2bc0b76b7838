package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizku_backend/internals/constants"
	"quizku_backend/internals/features/quiz/questions/dto"
	"quizku_backend/internals/features/quiz/questions/model"
	"quizku_backend/internals/features/quiz/questions/repository"
	"quizku_backend/internals/helpers/apperr"
)

// Sample is one delivered question set. TimeLimit applies to the whole set.
type Sample struct {
	Questions []model.QuestionModel
	TimeLimit time.Duration
}

func (s Sample) Public() []dto.PublicQuestion {
	return dto.ToPublicList(s.Questions, int(s.TimeLimit/time.Second))
}

type Service struct {
	DB         *gorm.DB
	SampleSize int
	TimeLimit  time.Duration
}

func New(db *gorm.DB, sampleSize int, timeLimit time.Duration) *Service {
	if sampleSize <= 0 {
		sampleSize = constants.DefaultSampleSize
	}
	if timeLimit <= 0 {
		timeLimit = constants.DefaultTimeLimit
	}
	return &Service{DB: db, SampleSize: sampleSize, TimeLimit: timeLimit}
}

// SampleQuestions returns up to SampleSize questions for language. An empty
// sample is a valid answer, not an error.
func (s *Service) SampleQuestions(ctx context.Context, language string) (Sample, error) {
	return s.SampleN(ctx, language, s.SampleSize)
}

func (s *Service) SampleN(ctx context.Context, language string, count int) (Sample, error) {
	lang := model.NormalizeLanguage(language)
	if lang == "" {
		return Sample{}, apperr.Invalid("language", "is required")
	}
	qs, err := repository.Sample(s.DB.WithContext(ctx), lang, count)
	if err != nil {
		return Sample{}, apperr.Internal("failed to load questions", err)
	}
	return Sample{Questions: qs, TimeLimit: s.TimeLimit}, nil
}

func (s *Service) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.QuestionModel, error) {
	qs, err := repository.FindByIDs(s.DB.WithContext(ctx), ids)
	if err != nil {
		return nil, apperr.Internal("failed to load questions", err)
	}
	return qs, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*model.QuestionModel, error) {
	q, err := repository.FindByID(s.DB.WithContext(ctx), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("question not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to load question", err)
	}
	return q, nil
}

// Create validates the whole question before anything is written.
func (s *Service) Create(ctx context.Context, req dto.CreateQuestionRequest) (*model.QuestionModel, error) {
	m, hasAnswer := req.ToModel()
	m.Normalize()
	if err := validateNew(&m, hasAnswer); err != nil {
		return nil, err
	}
	if err := repository.Create(s.DB.WithContext(ctx), &m); err != nil {
		return nil, apperr.Internal("failed to create question", err)
	}
	return &m, nil
}

func validateNew(m *model.QuestionModel, hasAnswer bool) error {
	err := m.Validate()
	if hasAnswer {
		return err
	}
	var v apperr.Violations
	var ae *apperr.Error
	if errors.As(err, &ae) {
		for f, msgs := range ae.Fields {
			if f == "correctAnswer" {
				continue
			}
			for _, msg := range msgs {
				v.Add(f, msg)
			}
		}
	}
	v.Add("correctAnswer", "is required")
	return v.Err()
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req dto.UpdateQuestionRequest) (*model.QuestionModel, error) {
	q, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.ApplyTo(q)
	q.Normalize()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := repository.Save(s.DB.WithContext(ctx), q); err != nil {
		return nil, apperr.Internal("failed to update question", err)
	}
	return q, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.Delete(s.DB.WithContext(ctx), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("question not found")
	}
	if err != nil {
		return apperr.Internal("failed to delete question", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, q dto.ListQuery) ([]model.QuestionModel, int64, error) {
	out, total, err := repository.List(s.DB.WithContext(ctx), q)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list questions", err)
	}
	return out, total, nil
}

func (s *Service) Languages(ctx context.Context) ([]dto.LanguageCount, error) {
	out, err := repository.Languages(s.DB.WithContext(ctx))
	if err != nil {
		return nil, apperr.Internal("failed to list languages", err)
	}
	return out, nil
}
