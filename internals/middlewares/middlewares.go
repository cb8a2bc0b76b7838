package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"quizku_backend/internals/configs"
	"quizku_backend/internals/middlewares/logger"
	"quizku_backend/internals/middlewares/metrics"
)

// SetupMiddlewares installs the stack shared by every route, outermost first.
// m may be nil.
func SetupMiddlewares(app *fiber.App, cfg *configs.AppConfig, m *metrics.Metrics) {
	app.Use(RecoveryMiddleware())
	app.Use(RequestContext(RequestTimeout))
	app.Use(logger.LoggerMiddleware())
	if m != nil {
		app.Use(m.Middleware())
	}
	app.Use(CorsMiddleware(cfg.CORSOrigins))
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
}
