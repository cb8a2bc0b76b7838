package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizResultModel is one graded attempt. Rows are append-only except for
// admin deletion.
type QuizResultModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index:idx_quiz_results_user_seq,priority:1" json:"userId"`
	Seq            int64     `gorm:"not null;index:idx_quiz_results_user_seq,priority:2" json:"-"`
	Score          int       `gorm:"not null" json:"score"`
	TotalQuestions int       `gorm:"not null" json:"totalQuestions"`
	Language       string    `gorm:"size:50;not null;index" json:"language"`
	Forced         bool      `gorm:"not null;default:false" json:"forced"`
	CreatedAt      time.Time `gorm:"not null;index" json:"date"`
}

func (QuizResultModel) TableName() string {
	return "quiz_results"
}

func (r *QuizResultModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	return nil
}

// Percentage is 100*score/total, 0 when there were no questions.
func (r QuizResultModel) Percentage() float64 {
	if r.TotalQuestions <= 0 {
		return 0
	}
	return float64(r.Score) / float64(r.TotalQuestions) * 100
}
