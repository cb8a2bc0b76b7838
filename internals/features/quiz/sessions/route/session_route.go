package route

import (
	"github.com/gofiber/fiber/v2"

	"quizku_backend/internals/features/quiz/sessions/controller"
	"quizku_backend/internals/features/quiz/sessions/service"
)

// SessionRoutes expects r to be the authenticated /api/quiz group.
func SessionRoutes(r fiber.Router, svc *service.Service) {
	ctrl := controller.NewSessionController(svc)

	r.Get("/questions/:language", ctrl.Questions) // GET  /api/quiz/questions/:language
	r.Post("/submit", ctrl.Submit)                // POST /api/quiz/submit
	r.Get("/history", ctrl.History)               // GET  /api/quiz/history
}
