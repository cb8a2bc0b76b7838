package details

import (
	"github.com/gofiber/fiber/v2"

	certRoute "quizku_backend/internals/features/certificates/route"
	certService "quizku_backend/internals/features/certificates/service"
	questionRoute "quizku_backend/internals/features/quiz/questions/route"
	questionService "quizku_backend/internals/features/quiz/questions/service"
	sessionRoute "quizku_backend/internals/features/quiz/sessions/route"
	sessionService "quizku_backend/internals/features/quiz/sessions/service"
	rateLimiter "quizku_backend/internals/middlewares"
)

// QuizRoutes mounts /api/quiz for signed-in users plus the public artifact links.
func QuizRoutes(
	app *fiber.App,
	authMw fiber.Handler,
	questions *questionService.Service,
	sessions *sessionService.Service,
	store *certService.Store,
) {
	// public, and registered before the group so authMw never sees it
	certRoute.CertificateRoutes(app, store)

	quiz := app.Group("/api/quiz",
		rateLimiter.GlobalRateLimiter(),
		authMw,
	)
	questionRoute.QuestionUserRoutes(quiz, questions)
	sessionRoute.SessionRoutes(quiz, sessions)
}
