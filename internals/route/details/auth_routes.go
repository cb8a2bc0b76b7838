package details

import (
	"github.com/gofiber/fiber/v2"

	authRoute "quizku_backend/internals/features/users/auth/route"
	authService "quizku_backend/internals/features/users/auth/service"
)

func AuthRoutes(app *fiber.App, svc *authService.Service, authMw fiber.Handler) {
	authRoute.AuthRoutes(app, svc, authMw)
}
