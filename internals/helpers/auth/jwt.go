package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"quizku_backend/internals/helpers/apperr"
)

// AccessClaims is the payload of every access token.
type AccessClaims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IssueAccessToken signs an HS256 token for id valid for ttl from now.
func IssueAccessToken(secret string, id Identity, now time.Time, ttl time.Duration) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, errors.New("jwt secret is empty")
	}
	exp := now.Add(ttl)
	claims := AccessClaims{
		UserID:   id.ID.String(),
		Username: id.Username,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccessToken verifies signature, algorithm and expiry.
func ParseAccessToken(secret, raw string) (Identity, time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return Identity{}, time.Time{}, apperr.Unauthenticated("authentication required")
	}
	var claims AccessClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Identity{}, time.Time{}, apperr.Wrap(apperr.KindInvalidToken, "invalid or expired token", err)
	}
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Identity{}, time.Time{}, apperr.InvalidToken("invalid token claims")
	}
	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return Identity{ID: uid, Username: claims.Username, Role: claims.Role}, exp, nil
}
