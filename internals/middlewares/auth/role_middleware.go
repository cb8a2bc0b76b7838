package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "quizku_backend/internals/helpers"
	"quizku_backend/internals/helpers/apperr"
	helperAuth "quizku_backend/internals/helpers/auth"
)

// OnlyRolesSlice lets the request through when the caller has one of allowedRoles.
func OnlyRolesSlice(message string, allowedRoles []string) fiber.Handler {
	if message == "" {
		message = "Forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(helperAuth.LocRole).(string)
		if !ok {
			return helper.FromError(c, apperr.Unauthenticated("Unauthorized - Role not found"))
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return helper.FromError(c, apperr.Forbidden(message))
	}
}

func OnlyRoles(message string, roles ...string) fiber.Handler {
	return OnlyRolesSlice(message, roles)
}
