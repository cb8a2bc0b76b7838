package service

import (
	"context"

	authRepo "quizku_backend/internals/features/users/auth/repository"
	"quizku_backend/internals/helpers/apperr"
	helperAuth "quizku_backend/internals/helpers/auth"
)

// ========================== LOGOUT ==========================

// Logout blacklists raw until its own expiry.
func (s *Service) Logout(ctx context.Context, raw string) error {
	_, exp, err := helperAuth.ParseAccessToken(s.Secret, raw)
	if err != nil {
		return err
	}
	if exp.IsZero() {
		exp = s.now().Add(s.TokenTTL)
	}
	digest := helperAuth.TokenDigest(raw, s.Secret)
	if err := authRepo.BlacklistToken(s.DB.WithContext(ctx), digest, exp); err != nil {
		return apperr.Internal("failed to revoke token", err)
	}
	return nil
}

// ========================== BLACKLIST ==========================

func (s *Service) IsRevoked(ctx context.Context, raw string) (bool, error) {
	digest := helperAuth.TokenDigest(raw, s.Secret)
	ok, err := authRepo.IsBlacklisted(s.DB.WithContext(ctx), digest, s.now())
	if err != nil {
		return false, apperr.Internal("failed to check token", err)
	}
	return ok, nil
}

// CleanupBlacklist purges rows whose token has expired anyway.
func (s *Service) CleanupBlacklist(ctx context.Context) (int64, error) {
	return authRepo.CleanupExpiredBlacklist(s.DB.WithContext(ctx), s.now())
}
