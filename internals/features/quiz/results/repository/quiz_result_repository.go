package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizku_backend/internals/features/quiz/results/model"
)

var ErrInvalidResult = errors.New("score must be between 0 and totalQuestions and totalQuestions > 0")

func ordered(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("seq ASC")
}

// Append stores r with the next per-user sequence number.
func Append(db *gorm.DB, r *model.QuizResultModel) error {
	if r.TotalQuestions <= 0 || r.Score < 0 || r.Score > r.TotalQuestions {
		return ErrInvalidResult
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var maxSeq int64
		if err := tx.Model(&model.QuizResultModel{}).
			Where("user_id = ?", r.UserID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).Error; err != nil {
			return err
		}
		r.Seq = maxSeq + 1
		return tx.Create(r).Error
	})
}

func ListByUser(db *gorm.DB, userID uuid.UUID) ([]model.QuizResultModel, error) {
	var out []model.QuizResultModel
	err := ordered(db.Where("user_id = ?", userID)).Find(&out).Error
	return out, err
}

// ListByUsers groups results per user id.
func ListByUsers(db *gorm.DB, userIDs []uuid.UUID) (map[uuid.UUID][]model.QuizResultModel, error) {
	out := make(map[uuid.UUID][]model.QuizResultModel, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var rows []model.QuizResultModel
	if err := ordered(db.Where("user_id IN ?", userIDs)).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.UserID] = append(out[r.UserID], r)
	}
	return out, nil
}

// FilterByDate returns results with start <= created_at <= end.
func FilterByDate(db *gorm.DB, start, end time.Time) ([]model.QuizResultModel, error) {
	var out []model.QuizResultModel
	err := ordered(db.Where("created_at >= ? AND created_at <= ?", start.UTC(), end.UTC())).Find(&out).Error
	return out, err
}

func All(db *gorm.DB) ([]model.QuizResultModel, error) {
	var out []model.QuizResultModel
	err := ordered(db).Find(&out).Error
	return out, err
}

// Remove deletes resultID only when it belongs to userID.
func Remove(db *gorm.DB, userID, resultID uuid.UUID) error {
	res := db.Where("id = ? AND user_id = ?", resultID, userID).Delete(&model.QuizResultModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
