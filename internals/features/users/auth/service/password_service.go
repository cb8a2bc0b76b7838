package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"quizku_backend/internals/features/users/auth/dto"
	authHelper "quizku_backend/internals/features/users/auth/helper"
	authRepo "quizku_backend/internals/features/users/auth/repository"
	"quizku_backend/internals/helpers/apperr"
	helperAuth "quizku_backend/internals/helpers/auth"
)

// ========================== RESET PASSWORD ==========================

// ResetPassword sets a new password without the old one.
func (s *Service) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	username := strings.TrimSpace(req.Username)
	if err := authHelper.ValidateResetPassword(username, req.NewPassword, req.ConfirmPassword); err != nil {
		return err
	}

	db := s.DB.WithContext(ctx)
	user, err := authRepo.FindUserByEmailOrUsername(db, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("User not found")
	}
	if err != nil {
		return apperr.Internal("failed to load user", err)
	}

	hash, err := authHelper.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Internal("password hashing failed", err)
	}
	if err := authRepo.UpdateUserPassword(db, user.ID, hash); err != nil {
		return apperr.Internal("failed to update password", err)
	}

	s.Notifier.NotifyPasswordChanged(ctx, recipient(user))
	return nil
}

// ========================== CHANGE PASSWORD ==========================

func (s *Service) ChangePassword(ctx context.Context, id helperAuth.Identity, req dto.ChangePasswordRequest) error {
	if err := authHelper.ValidateChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	db := s.DB.WithContext(ctx)
	user, err := authRepo.FindUserByID(db, id.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("User not found")
	}
	if err != nil {
		return apperr.Internal("failed to load user", err)
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.CurrentPassword); err != nil {
		return apperr.New(apperr.KindInvalidCredentials, "Current password incorrect")
	}

	hash, err := authHelper.HashPassword(req.NewPassword)
	if err != nil {
		return apperr.Internal("password hashing failed", err)
	}
	if err := authRepo.UpdateUserPassword(db, user.ID, hash); err != nil {
		return apperr.Internal("failed to update password", err)
	}

	s.Notifier.NotifyPasswordChanged(ctx, recipient(user))
	return nil
}
