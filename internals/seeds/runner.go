package seeds

import (
	"gorm.io/gorm"

	"quizku_backend/internals/configs"
	questions "quizku_backend/internals/seeds/quiz/questions"
	admin "quizku_backend/internals/seeds/users/admin"
)

func RunAllSeeds(db *gorm.DB, cfg *configs.AppConfig) error {
	//* Users
	if err := admin.SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return err
	}

	//* Quiz
	if _, err := questions.SeedQuestionsFromJSON(db, cfg.SeedQuestionsPath); err != nil {
		return err
	}
	return nil
}
