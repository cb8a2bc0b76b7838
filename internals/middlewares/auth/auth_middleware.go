package auth

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	helper "quizku_backend/internals/helpers"
	helperAuth "quizku_backend/internals/helpers/auth"
	"quizku_backend/internals/logger"
)

// Authenticator verifies a raw access token, blacklist included.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (helperAuth.Identity, time.Time, error)
}

type AuthJWTOpts struct {
	Auth                Authenticator
	AllowCookieFallback bool
	SkipPaths           []string
}

func AuthJWT(opts AuthJWTOpts) fiber.Handler {
	skip := make(map[string]struct{}, len(opts.SkipPaths))
	for _, p := range opts.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if _, ok := skip[c.Path()]; ok {
			return c.Next()
		}

		raw := helperAuth.RawAccessToken(c, opts.AllowCookieFallback)
		id, _, err := opts.Auth.Authenticate(c.UserContext(), raw)
		if err != nil {
			logger.FromCtx(c).WithError(err).Debug("auth rejected")
			return helper.FromError(c, err)
		}

		helperAuth.SetIdentity(c, id)
		c.Locals(helperAuth.LocRawToken, raw)
		return c.Next()
	}
}
