package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"quizku_backend/internals/constants"
	"quizku_backend/internals/features/notifications"
	resultRepo "quizku_backend/internals/features/quiz/results/repository"
	"quizku_backend/internals/features/users/auth/dto"
	authHelper "quizku_backend/internals/features/users/auth/helper"
	authRepo "quizku_backend/internals/features/users/auth/repository"
	userModel "quizku_backend/internals/features/users/user/model"
	helper "quizku_backend/internals/helpers"
	"quizku_backend/internals/helpers/apperr"
	helperAuth "quizku_backend/internals/helpers/auth"
)

/* ==========================
   Const & Types
========================== */

const accessTTLDefault = 24 * time.Hour

type Service struct {
	DB       *gorm.DB
	Secret   string
	TokenTTL time.Duration
	Notifier *notifications.Notifier
	Now      func() time.Time
}

func New(db *gorm.DB, secret string, ttl time.Duration, n *notifications.Notifier) *Service {
	if ttl <= 0 {
		ttl = accessTTLDefault
	}
	return &Service{DB: db, Secret: secret, TokenTTL: ttl, Notifier: n, Now: time.Now}
}

func (s *Service) now() time.Time { return s.Now().UTC() }

func recipient(u *userModel.UserModel) notifications.Recipient {
	return notifications.Recipient{Username: u.UserName, Email: u.Email}
}

/* ==========================
   REGISTER
========================== */

// Register creates a user account. The email doubles as the username.
func (s *Service) Register(ctx context.Context, req dto.RegisterRequest) (*userModel.UserModel, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := authHelper.ValidateRegisterInput(email, req.Password); err != nil {
		return nil, err
	}

	db := s.DB.WithContext(ctx)
	exists, err := authRepo.ExistsByEmailOrUsername(db, email, email)
	if err != nil {
		return nil, apperr.Internal("failed to check account", err)
	}
	if exists {
		return nil, apperr.Conflict("User already exists")
	}

	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal("password hashing failed", err)
	}
	user := &userModel.UserModel{
		UserName: email,
		Email:    email,
		Password: hash,
		Role:     constants.RoleUser,
	}
	if err := authRepo.CreateUser(db, user); err != nil {
		if helper.IsDuplicateKey(err) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, apperr.Internal("failed to create user", err)
	}

	s.Notifier.NotifyRegistration(ctx, user.Email)
	return user, nil
}

/* ==========================
   LOGIN
========================== */

func (s *Service) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if err := authHelper.ValidateLoginInput(username, req.Password); err != nil {
		return nil, err
	}

	user, err := authRepo.FindUserByEmailOrUsername(s.DB.WithContext(ctx), username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.Password); err != nil {
		return nil, apperr.New(apperr.KindInvalidCredentials, "Invalid credentials")
	}

	id := helperAuth.Identity{ID: user.ID, Username: user.UserName, Role: user.Role}
	token, _, err := helperAuth.IssueAccessToken(s.Secret, id, s.now(), s.TokenTTL)
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.UserBrief{Username: user.UserName, Role: user.Role},
	}, nil
}

/* ==========================
   AUTHENTICATE
========================== */

// Authenticate verifies the token and rejects revoked ones.
func (s *Service) Authenticate(ctx context.Context, raw string) (helperAuth.Identity, time.Time, error) {
	id, exp, err := helperAuth.ParseAccessToken(s.Secret, raw)
	if err != nil {
		return helperAuth.Identity{}, time.Time{}, err
	}
	revoked, err := s.IsRevoked(ctx, raw)
	if err != nil {
		return helperAuth.Identity{}, time.Time{}, err
	}
	if revoked {
		return helperAuth.Identity{}, time.Time{}, apperr.InvalidToken("token has been revoked")
	}
	return id, exp, nil
}

/* ==========================
   PROFILE
========================== */

func (s *Service) Profile(ctx context.Context, id helperAuth.Identity) (*dto.ProfileResponse, error) {
	db := s.DB.WithContext(ctx)
	user, err := authRepo.FindUserByID(db, id.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	results, err := resultRepo.ListByUser(db, user.ID)
	if err != nil {
		return nil, apperr.Internal("failed to load results", err)
	}
	out := dto.ToProfile(*user, results)
	return &out, nil
}
