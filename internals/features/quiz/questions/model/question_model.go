package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"quizku_backend/internals/constants"
	"quizku_backend/internals/helpers/apperr"
)

type QuestionModel struct {
	ID            uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Language      string                      `gorm:"size:50;not null;index" json:"language"`
	Question      string                      `gorm:"type:text;not null" json:"question"`
	Options       datatypes.JSONSlice[string] `gorm:"not null" json:"options"`
	CorrectAnswer int                         `gorm:"not null" json:"correctAnswer"`
	Difficulty    string                      `gorm:"size:10;not null;default:'medium';index" json:"difficulty"`
	Explanation   string                      `gorm:"type:text;not null" json:"explanation"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (QuestionModel) TableName() string {
	return "quiz_questions"
}

func (q *QuestionModel) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// NormalizeLanguage is applied on write and on every lookup.
func NormalizeLanguage(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Normalize trims text fields and fills the default difficulty.
func (q *QuestionModel) Normalize() {
	q.Language = NormalizeLanguage(q.Language)
	q.Question = strings.TrimSpace(q.Question)
	q.Explanation = strings.TrimSpace(q.Explanation)
	q.Difficulty = strings.ToLower(strings.TrimSpace(q.Difficulty))
	if q.Difficulty == "" {
		q.Difficulty = constants.DifficultyMedium
	}
	for i, o := range q.Options {
		q.Options[i] = strings.TrimSpace(o)
	}
}

// Validate reports every violated constraint in a single validation error.
func (q *QuestionModel) Validate() error {
	var v apperr.Violations
	if q.Language == "" {
		v.Add("language", "is required")
	}
	if q.Question == "" {
		v.Add("question", "is required")
	}
	if q.Explanation == "" {
		v.Add("explanation", "is required")
	}
	if len(q.Options) != constants.OptionsPerQuestion {
		v.Addf("options", "must have exactly %d entries", constants.OptionsPerQuestion)
	}
	for i, o := range q.Options {
		if o == "" {
			v.Addf("options", "entry %d must not be empty", i)
		}
	}
	switch {
	case len(q.Options) == 0:
		v.Add("correctAnswer", "must reference an option")
	case q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options):
		v.Addf("correctAnswer", "must be an option index between 0 and %d", len(q.Options)-1)
	}
	if !validDifficulty(q.Difficulty) {
		v.Add("difficulty", "must be one of easy, medium, hard")
	}
	return v.Err()
}

func validDifficulty(d string) bool {
	for _, x := range constants.Difficulties {
		if x == d {
			return true
		}
	}
	return false
}

// IsCorrect reports whether option is this question's correct answer.
func (q *QuestionModel) IsCorrect(option int) bool {
	return option == q.CorrectAnswer
}
