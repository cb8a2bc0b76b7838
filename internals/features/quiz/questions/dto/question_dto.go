package dto

import (
	"time"

	"github.com/google/uuid"

	"quizku_backend/internals/features/quiz/questions/model"
)

/* =========================================================
   Requests
========================================================= */

type CreateQuestionRequest struct {
	Language      string   `json:"language"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer"`
	Difficulty    string   `json:"difficulty"`
	Explanation   string   `json:"explanation"`
}

// ToModel keeps a missing correctAnswer distinguishable from index 0.
func (r CreateQuestionRequest) ToModel() (model.QuestionModel, bool) {
	m := model.QuestionModel{
		Language:    r.Language,
		Question:    r.Question,
		Options:     append([]string(nil), r.Options...),
		Difficulty:  r.Difficulty,
		Explanation: r.Explanation,
	}
	if r.CorrectAnswer == nil {
		return m, false
	}
	m.CorrectAnswer = *r.CorrectAnswer
	return m, true
}

// UpdateQuestionRequest is a partial update. nil fields are left alone.
type UpdateQuestionRequest struct {
	Language      *string  `json:"language"`
	Question      *string  `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer"`
	Difficulty    *string  `json:"difficulty"`
	Explanation   *string  `json:"explanation"`
}

func (r UpdateQuestionRequest) ApplyTo(m *model.QuestionModel) {
	if r.Language != nil {
		m.Language = *r.Language
	}
	if r.Question != nil {
		m.Question = *r.Question
	}
	if r.Options != nil {
		m.Options = append([]string(nil), r.Options...)
	}
	if r.CorrectAnswer != nil {
		m.CorrectAnswer = *r.CorrectAnswer
	}
	if r.Difficulty != nil {
		m.Difficulty = *r.Difficulty
	}
	if r.Explanation != nil {
		m.Explanation = *r.Explanation
	}
}

type ListQuery struct {
	Language   string
	Difficulty string
	Q          string
	Offset     int
	Limit      int
}

/* =========================================================
   Responses
========================================================= */

// PublicQuestion is what a quiz taker sees. The correct answer and
// explanation are withheld.
type PublicQuestion struct {
	ID         uuid.UUID `json:"id"`
	Language   string    `json:"language"`
	Question   string    `json:"question"`
	Options    []string  `json:"options"`
	Difficulty string    `json:"difficulty"`
	TimeLimit  int       `json:"timeLimit"`
}

func ToPublic(m model.QuestionModel, timeLimitSeconds int) PublicQuestion {
	return PublicQuestion{
		ID:         m.ID,
		Language:   m.Language,
		Question:   m.Question,
		Options:    append([]string(nil), m.Options...),
		Difficulty: m.Difficulty,
		TimeLimit:  timeLimitSeconds,
	}
}

func ToPublicList(ms []model.QuestionModel, timeLimitSeconds int) []PublicQuestion {
	out := make([]PublicQuestion, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToPublic(m, timeLimitSeconds))
	}
	return out
}

// AdminQuestion is the full record.
type AdminQuestion struct {
	ID            uuid.UUID `json:"id"`
	Language      string    `json:"language"`
	Question      string    `json:"question"`
	Options       []string  `json:"options"`
	CorrectAnswer int       `json:"correctAnswer"`
	Difficulty    string    `json:"difficulty"`
	Explanation   string    `json:"explanation"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToAdmin(m model.QuestionModel) AdminQuestion {
	return AdminQuestion{
		ID:            m.ID,
		Language:      m.Language,
		Question:      m.Question,
		Options:       append([]string(nil), m.Options...),
		CorrectAnswer: m.CorrectAnswer,
		Difficulty:    m.Difficulty,
		Explanation:   m.Explanation,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToAdminList(ms []model.QuestionModel) []AdminQuestion {
	out := make([]AdminQuestion, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToAdmin(m))
	}
	return out
}

type LanguageCount struct {
	Language string `json:"language"`
	Count    int64  `json:"count"`
}
