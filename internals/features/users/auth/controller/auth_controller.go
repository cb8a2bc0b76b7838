package controller

import (
	"github.com/gofiber/fiber/v2"

	"quizku_backend/internals/features/users/auth/dto"
	"quizku_backend/internals/features/users/auth/service"
	helper "quizku_backend/internals/helpers"
	helperAuth "quizku_backend/internals/helpers/auth"
)

type AuthController struct {
	Service *service.Service
}

func NewAuthController(svc *service.Service) *AuthController {
	return &AuthController{Service: svc}
}

// POST /api/auth/register
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	user, err := ac.Service.Register(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "User registered successfully", dto.UserBrief{
		Username: user.UserName,
		Role:     user.Role,
	})
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	out, err := ac.Service.Login(c.UserContext(), req)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "Login successful", out)
}

// POST /api/auth/forgot-password
func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.Service.ResetPassword(c.UserContext(), req); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Password reset successfully", nil)
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw, _ := c.Locals(helperAuth.LocRawToken).(string)
	if err := ac.Service.Logout(c.UserContext(), raw); err != nil {
		return helper.FromError(c, err)
	}
	c.ClearCookie("access_token")
	return helper.JsonOK(c, "Logged out successfully", nil)
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ac.Service.ChangePassword(c.UserContext(), id, req); err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonUpdated(c, "Password changed successfully", nil)
}

// GET /api/auth/profile
func (ac *AuthController) Profile(c *fiber.Ctx) error {
	id, err := helperAuth.GetIdentity(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	out, err := ac.Service.Profile(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}
