package dto

import (
	resultModel "quizku_backend/internals/features/quiz/results/model"
	userModel "quizku_backend/internals/features/users/user/model"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordRequest struct {
	Username        string `json:"username"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type UserBrief struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  UserBrief `json:"user"`
}

type ProfileResponse struct {
	ID        string                        `json:"id"`
	Username  string                        `json:"username"`
	Email     string                        `json:"email"`
	Role      string                        `json:"role"`
	IsBlocked bool                          `json:"isBlocked"`
	Badges    []string                      `json:"badges"`
	Results   []resultModel.QuizResultModel `json:"results"`
}

func ToProfile(u userModel.UserModel, results []resultModel.QuizResultModel) ProfileResponse {
	badges := []string(u.Badges)
	if badges == nil {
		badges = []string{}
	}
	if results == nil {
		results = []resultModel.QuizResultModel{}
	}
	return ProfileResponse{
		ID:        u.ID.String(),
		Username:  u.UserName,
		Email:     u.Email,
		Role:      u.Role,
		IsBlocked: u.IsBlocked,
		Badges:    badges,
		Results:   results,
	}
}
