package repository

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizku_backend/internals/features/quiz/questions/dto"
	"quizku_backend/internals/features/quiz/questions/model"
)

// Sample picks up to count distinct questions for language in random order.
// ORDER BY RANDOM() is understood by both postgres and sqlite.
func Sample(db *gorm.DB, language string, count int) ([]model.QuestionModel, error) {
	var out []model.QuestionModel
	if count <= 0 {
		return out, nil
	}
	err := db.Where("language = ?", model.NormalizeLanguage(language)).
		Order("RANDOM()").
		Limit(count).
		Find(&out).Error
	return out, err
}

func FindByID(db *gorm.DB, id uuid.UUID) (*model.QuestionModel, error) {
	var q model.QuestionModel
	if err := db.Where("id = ?", id).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// FindByIDs returns the questions that exist; unknown ids are skipped.
func FindByIDs(db *gorm.DB, ids []uuid.UUID) ([]model.QuestionModel, error) {
	var out []model.QuestionModel
	if len(ids) == 0 {
		return out, nil
	}
	err := db.Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func Create(db *gorm.DB, q *model.QuestionModel) error {
	return db.Create(q).Error
}

func CreateBatch(db *gorm.DB, qs []model.QuestionModel) error {
	if len(qs) == 0 {
		return nil
	}
	return db.CreateInBatches(&qs, 100).Error
}

func Save(db *gorm.DB, q *model.QuestionModel) error {
	return db.Save(q).Error
}

func Delete(db *gorm.DB, id uuid.UUID) error {
	res := db.Where("id = ?", id).Delete(&model.QuestionModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func Count(db *gorm.DB) (int64, error) {
	var n int64
	err := db.Model(&model.QuestionModel{}).Count(&n).Error
	return n, err
}

func List(db *gorm.DB, q dto.ListQuery) ([]model.QuestionModel, int64, error) {
	tx := db.Model(&model.QuestionModel{})
	if lang := model.NormalizeLanguage(q.Language); lang != "" {
		tx = tx.Where("language = ?", lang)
	}
	if d := strings.ToLower(strings.TrimSpace(q.Difficulty)); d != "" {
		tx = tx.Where("difficulty = ?", d)
	}
	if s := strings.ToLower(strings.TrimSpace(q.Q)); s != "" {
		tx = tx.Where("LOWER(question) LIKE ?", "%"+s+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []model.QuestionModel
	tx = tx.Order("language ASC").Order("created_at ASC")
	if q.Limit > 0 {
		tx = tx.Offset(q.Offset).Limit(q.Limit)
	}
	if err := tx.Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Languages lists distinct languages with their question counts.
func Languages(db *gorm.DB) ([]dto.LanguageCount, error) {
	var out []dto.LanguageCount
	err := db.Model(&model.QuestionModel{}).
		Select("language, COUNT(*) AS count").
		Group("language").
		Order("language ASC").
		Scan(&out).Error
	return out, err
}
