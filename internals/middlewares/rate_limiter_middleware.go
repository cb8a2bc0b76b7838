package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "quizku_backend/internals/helpers"
)

func limitByIP(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter: every API endpoint
func GlobalRateLimiter() fiber.Handler {
	return limitByIP(100, time.Minute, "Too many requests. Please try again later.")
}

// Login is the tightest one
func LoginRateLimiter() fiber.Handler {
	return limitByIP(5, time.Minute, "Too many login attempts. Please try again shortly.")
}

func RegisterRateLimiter() fiber.Handler {
	return limitByIP(3, 5*time.Minute, "Too many registration attempts. Please wait a few minutes.")
}

func ForgotPasswordRateLimiter() fiber.Handler {
	return limitByIP(2, 10*time.Minute, "Too many password reset requests. Please try again in 10 minutes.")
}
