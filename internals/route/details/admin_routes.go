package details

import (
	"github.com/gofiber/fiber/v2"

	"quizku_backend/internals/constants"
	adminRoute "quizku_backend/internals/features/admin/route"
	adminService "quizku_backend/internals/features/admin/service"
	questionRoute "quizku_backend/internals/features/quiz/questions/route"
	questionService "quizku_backend/internals/features/quiz/questions/service"
	authMiddleware "quizku_backend/internals/middlewares/auth"
)

// AdminRoutes mounts /api/admin behind the token and role check.
func AdminRoutes(
	app *fiber.App,
	authMw fiber.Handler,
	questions *questionService.Service,
	admin *adminService.Service,
) {
	g := app.Group("/api/admin",
		authMw,
		authMiddleware.OnlyRoles(constants.ErrAdminOnly, constants.AdminOnly...),
	)
	questionRoute.QuestionAdminRoutes(g, questions)
	adminRoute.AdminRoutes(g, admin)
}
