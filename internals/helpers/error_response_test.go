package helper

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizku_backend/internals/helpers/apperr"
)

func runError(t *testing.T, err error) (int, ErrorResponse) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error { return err })

	resp, reqErr := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, reqErr)
	body, _ := io.ReadAll(resp.Body)

	var out ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestFromError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperr.NotFound("no such question"), 404, "NOT_FOUND"},
		{apperr.Forbidden("account blocked"), 403, "FORBIDDEN"},
		{apperr.Conflict("user already exists"), 400, "CONFLICT"},
		{apperr.New(apperr.KindInvalidCredentials, "invalid password"), 400, "INVALID_CREDENTIALS"},
		{apperr.Unauthenticated("missing token"), 401, "UNAUTHORIZED"},
		{apperr.InvalidToken("token expired"), 401, "INVALID_TOKEN"},
		{apperr.Dependency("pdf failed", errors.New("x")), 500, "DEPENDENCY_FAILURE"},
		{errors.New("raw"), 500, "INTERNAL_ERROR"},
		{fiber.ErrNotFound, 404, "NOT_FOUND"},
	}
	for _, tc := range cases {
		status, body := runError(t, tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.Equal(t, tc.code, body.ErrorCode, tc.err.Error())
		assert.False(t, body.Success)
	}
}

func TestFromError_InternalCauseHidden(t *testing.T) {
	_, body := runError(t, errors.New("pq: password authentication failed"))
	assert.NotContains(t, body.Message, "pq:")
}

func TestFromError_ValidationFields(t *testing.T) {
	status, body := runError(t, apperr.Invalid("password", "must be at least 6 characters"))
	assert.Equal(t, 400, status)
	assert.Equal(t, "VALIDATION_ERROR", body.ErrorCode)
	assert.Equal(t, []string{"must be at least 6 characters"}, body.Errors["password"])
}
