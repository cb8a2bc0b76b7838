package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"

	"quizku_backend/internals/logger"
)

const HeaderRequestID = "X-Request-ID"

// RequestTimeout matches the statement_timeout headroom on the DB side.
const RequestTimeout = 5 * time.Second

// RequestContext assigns a request id and bounds c.UserContext() by timeout.
func RequestContext(timeout time.Duration) fiber.Handler {
	if timeout <= 0 {
		timeout = RequestTimeout
	}
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" {
			id = utils.UUID()
		}
		c.Set(HeaderRequestID, id)
		c.Locals(logger.LocalsRequestID, id)

		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
