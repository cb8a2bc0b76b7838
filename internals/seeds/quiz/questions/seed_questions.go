package questions

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	"quizku_backend/internals/features/quiz/questions/model"
	"quizku_backend/internals/logger"
)

type QuestionSeed struct {
	Language      string   `json:"language"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Difficulty    string   `json:"difficulty"`
	Explanation   string   `json:"explanation"`
}

// SeedQuestionsFromJSON fills quiz_questions from filePath when the table is
// empty. It returns how many rows were inserted.
func SeedQuestionsFromJSON(db *gorm.DB, filePath string) (int, error) {
	log := logger.L().WithField("seed", "questions")

	var count int64
	if err := db.Model(&model.QuestionModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		log.WithField("existing", count).Info("questions already present, skipped")
		return 0, nil
	}

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", filePath, err)
	}
	var seeds []QuestionSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return 0, fmt.Errorf("decode %s: %w", filePath, err)
	}

	rows := make([]model.QuestionModel, 0, len(seeds))
	for i, s := range seeds {
		q := model.QuestionModel{
			Language:      s.Language,
			Question:      s.Question,
			Options:       s.Options,
			CorrectAnswer: s.CorrectAnswer,
			Difficulty:    s.Difficulty,
			Explanation:   s.Explanation,
		}
		q.Normalize()
		if err := q.Validate(); err != nil {
			return 0, fmt.Errorf("question #%d: %w", i+1, err)
		}
		rows = append(rows, q)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&rows, 100).Error
	})
	if err != nil {
		return 0, err
	}
	log.WithField("inserted", len(rows)).Info("questions seeded")
	return len(rows), nil
}
