package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"quizku_backend/internals/helpers/apperr"
)

// Locals keys written by the JWT middleware.
const (
	LocUserID   = "user_id"
	LocUserName = "user_name"
	LocRole     = "userRole"
	LocRawToken = "raw_token"
)

// Identity is the authenticated caller.
type Identity struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

func (i Identity) IsAdmin() bool { return strings.EqualFold(i.Role, "admin") }

func SetIdentity(c *fiber.Ctx, id Identity) {
	c.Locals(LocUserID, id.ID.String())
	c.Locals(LocUserName, id.Username)
	c.Locals(LocRole, id.Role)
}

// GetIdentity reads the identity the JWT middleware stored.
func GetIdentity(c *fiber.Ctx) (Identity, error) {
	raw, _ := c.Locals(LocUserID).(string)
	if strings.TrimSpace(raw) == "" {
		return Identity{}, apperr.Unauthenticated("authentication required")
	}
	uid, err := uuid.Parse(raw)
	if err != nil {
		return Identity{}, apperr.InvalidToken("invalid user id in token")
	}
	name, _ := c.Locals(LocUserName).(string)
	role, _ := c.Locals(LocRole).(string)
	return Identity{ID: uid, Username: name, Role: role}, nil
}
