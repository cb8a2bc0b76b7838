package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	adminService "quizku_backend/internals/features/admin/service"
	certService "quizku_backend/internals/features/certificates/service"
	questionService "quizku_backend/internals/features/quiz/questions/service"
	sessionService "quizku_backend/internals/features/quiz/sessions/service"
	authService "quizku_backend/internals/features/users/auth/service"
	"quizku_backend/internals/logger"
	authMiddleware "quizku_backend/internals/middlewares/auth"
	"quizku_backend/internals/middlewares/metrics"
	routeDetails "quizku_backend/internals/route/details"
)

var startTime time.Time

// Deps is everything the routes need, built once in main.
type Deps struct {
	DB        *gorm.DB
	Env       string
	Auth      *authService.Service
	Questions *questionService.Service
	Sessions  *sessionService.Service
	Admin     *adminService.Service
	Store     *certService.Store
	Metrics   *metrics.Metrics
}

func SetupRoutes(app *fiber.App, d Deps) {
	startTime = time.Now()
	log := logger.L()

	BaseRoutes(app, d)

	authMw := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Auth:                d.Auth,
		AllowCookieFallback: true,
	})

	log.Info("mounting auth routes")
	routeDetails.AuthRoutes(app, d.Auth, authMw)

	log.Info("mounting quiz routes")
	routeDetails.QuizRoutes(app, authMw, d.Questions, d.Sessions, d.Store)

	log.Info("mounting admin routes")
	routeDetails.AdminRoutes(app, authMw, d.Questions, d.Admin)
}
