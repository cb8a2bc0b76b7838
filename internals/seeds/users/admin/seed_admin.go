package admin

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"quizku_backend/internals/constants"
	authHelper "quizku_backend/internals/features/users/auth/helper"
	authRepo "quizku_backend/internals/features/users/auth/repository"
	"quizku_backend/internals/features/users/user/model"
	"quizku_backend/internals/logger"
)

// SeedAdmin creates the admin account once. An existing username is left as is.
func SeedAdmin(db *gorm.DB, username, password string) error {
	log := logger.L().WithField("seed", "admin")
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return errors.New("admin username and password are required")
	}

	_, err := authRepo.FindUserByUsername(db, username)
	if err == nil {
		log.WithField("username", username).Info("admin already exists, skipped")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := authHelper.HashPassword(password)
	if err != nil {
		return err
	}
	email := username
	if !strings.Contains(email, "@") {
		email = username + "@quizku.local"
	}
	user := model.UserModel{
		UserName: username,
		Email:    email,
		Password: hashed,
		Role:     constants.RoleAdmin,
	}
	if err := authRepo.CreateUser(db, &user); err != nil {
		return err
	}
	log.WithField("username", username).Info("admin created")
	return nil
}
