package route

import (
	"github.com/gofiber/fiber/v2"

	controller "quizku_backend/internals/features/users/auth/controller"
	"quizku_backend/internals/features/users/auth/service"
	rateLimiter "quizku_backend/internals/middlewares"
)

// AuthRoutes mounts /api/auth. authMw guards the endpoints that need a token.
func AuthRoutes(app *fiber.App, svc *service.Service, authMw fiber.Handler) {
	authController := controller.NewAuthController(svc)

	// ==========================
	// PUBLIC
	// Base: /api/auth
	// ==========================
	baseAuth := app.Group("/api/auth")

	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/forgot-password", rateLimiter.ForgotPasswordRateLimiter(), authController.ResetPassword)

	// ==========================
	// PROTECTED
	// ==========================
	baseAuth.Post("/logout", authMw, authController.Logout)
	baseAuth.Post("/change-password", authMw, authController.ChangePassword)
	baseAuth.Get("/profile", authMw, authController.Profile)
}
