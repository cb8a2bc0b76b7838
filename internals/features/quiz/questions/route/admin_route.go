package route

import (
	"github.com/gofiber/fiber/v2"

	qcontroller "quizku_backend/internals/features/quiz/questions/controller"
	qservice "quizku_backend/internals/features/quiz/questions/service"
)

/*
Note:
- The parent router is already mounted at /api/admin behind AuthJWT and OnlyRoles(admin).
*/

func QuestionAdminRoutes(r fiber.Router, svc *qservice.Service) {
	ctrl := qcontroller.NewQuestionController(svc)

	g := r.Group("/questions")
	g.Get("/", ctrl.List)         // GET    /api/admin/questions
	g.Post("/", ctrl.Create)      // POST   /api/admin/questions
	g.Get("/:id", ctrl.GetByID)   // GET    /api/admin/questions/:id
	g.Put("/:id", ctrl.Update)    // PUT    /api/admin/questions/:id
	g.Delete("/:id", ctrl.Delete) // DELETE /api/admin/questions/:id
}

// QuestionUserRoutes is mounted under the authenticated /api/quiz group.
func QuestionUserRoutes(r fiber.Router, svc *qservice.Service) {
	ctrl := qcontroller.NewQuestionController(svc)
	r.Get("/languages", ctrl.Languages) // GET /api/quiz/languages
}
