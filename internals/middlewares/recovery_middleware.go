package middlewares

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"quizku_backend/internals/logger"
)

// RecoveryMiddleware turns a panic into an error for the app ErrorHandler and
// logs the stack.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.FromCtx(c).
				WithField("panic", fmt.Sprint(e)).
				WithField("stack", string(debug.Stack())).
				Error("panic recovered")
		},
	})
}
