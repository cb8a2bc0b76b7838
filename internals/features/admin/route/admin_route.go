package route

import (
	"github.com/gofiber/fiber/v2"

	"quizku_backend/internals/features/admin/controller"
	"quizku_backend/internals/features/admin/service"
)

// AdminRoutes expects r to be /api/admin, already gated to admins.
func AdminRoutes(r fiber.Router, svc *service.Service) {
	ctrl := controller.NewAdminController(svc)

	results := r.Group("/results")
	results.Get("/", ctrl.Results)                            // GET    /api/admin/results
	results.Get("/filter", ctrl.Filter)                       // GET    /api/admin/results/filter
	results.Get("/search", ctrl.Search)                       // GET    /api/admin/results/search
	results.Get("/export/:username", ctrl.Export)             // GET    /api/admin/results/export/:username
	results.Delete("/:username/:resultId", ctrl.DeleteResult) // DELETE /api/admin/results/:username/:resultId

	r.Get("/user-quiz-details/:userId", ctrl.UserQuizDetails) // GET /api/admin/user-quiz-details/:userId

	users := r.Group("/users")
	users.Put("/:username/block", ctrl.Block)     // PUT /api/admin/users/:username/block
	users.Put("/:username/unblock", ctrl.Unblock) // PUT /api/admin/users/:username/unblock

	r.Get("/statistics", ctrl.Statistics) // GET /api/admin/statistics
}
