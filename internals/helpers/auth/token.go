package helper

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// TokenDigest is what the blacklist stores instead of the raw token.
func TokenDigest(rawAccessToken, secret string) string {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(rawAccessToken))
	return hex.EncodeToString(m.Sum(nil))
}

// RawAccessToken reads Authorization: Bearer ..., falling back to the
// access_token cookie when allowed.
func RawAccessToken(c *fiber.Ctx, cookieFallback bool) string {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if fields := strings.Fields(authHeader); len(fields) == 2 && strings.EqualFold(fields[0], "bearer") {
		return strings.Trim(fields[1], "\"'")
	}
	if cookieFallback {
		return strings.TrimSpace(c.Cookies("access_token"))
	}
	return ""
}
