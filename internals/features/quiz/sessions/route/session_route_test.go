package route

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizku_backend/internals/features/notifications"
	qdto "quizku_backend/internals/features/quiz/questions/dto"
	qservice "quizku_backend/internals/features/quiz/questions/service"
	sessionService "quizku_backend/internals/features/quiz/sessions/service"
	authDto "quizku_backend/internals/features/users/auth/dto"
	authService "quizku_backend/internals/features/users/auth/service"
	helper "quizku_backend/internals/helpers"
	authMw "quizku_backend/internals/middlewares/auth"
	"quizku_backend/internals/testutil"
)

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

func newApp(t *testing.T) (*fiber.App, string, *qservice.Service) {
	t.Helper()
	db := testutil.OpenDB(t)
	n := notifications.New(&testutil.Mailer{})
	auth := authService.New(db, "route-secret", time.Hour, n)
	qs := qservice.New(db, 6, 300*time.Second)

	ctx := context.Background()
	_, err := auth.Register(ctx, authDto.RegisterRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	login, err := auth.Login(ctx, authDto.LoginRequest{Username: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	quiz := app.Group("/api/quiz", authMw.AuthJWT(authMw.AuthJWTOpts{Auth: auth}))
	SessionRoutes(quiz, sessionService.New(db, qs, n, nil, nil))
	return app, login.Token, qs
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestQuizFlow(t *testing.T) {
	app, token, qs := newApp(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		c := i % 4
		_, err := qs.Create(ctx, qdto.CreateQuestionRequest{
			Language: "python", Question: fmt.Sprintf("q%d", i),
			Options: []string{"a", "b", "c", "d"}, CorrectAnswer: &c, Explanation: "x",
		})
		require.NoError(t, err)
	}

	code, env := call(t, app, "GET", "/api/quiz/questions/python", "", nil)
	assert.Equal(t, 401, code)
	assert.Equal(t, "UNAUTHORIZED", env.ErrorCode)

	code, env = call(t, app, "GET", "/api/quiz/questions/python", token, nil)
	require.Equal(t, 200, code)
	var sample []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &sample))
	require.Len(t, sample, 3)
	for _, q := range sample {
		assert.NotContains(t, q, "correctAnswer")
		assert.NotContains(t, q, "explanation")
	}

	answers := map[string]int{}
	ids := []string{}
	for _, q := range sample {
		ids = append(ids, q["id"].(string))
	}
	answers[ids[0]] = 0

	code, env = call(t, app, "POST", "/api/quiz/submit", token, map[string]any{
		"answers": answers, "language": "python", "questionIds": ids,
	})
	require.Equal(t, 200, code, env.Message)
	var out map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, 3.0, out["totalQuestions"])
	assert.Contains(t, out, "percentage")

	code, env = call(t, app, "GET", "/api/quiz/history", token, nil)
	require.Equal(t, 200, code)
	var hist []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &hist))
	assert.Len(t, hist, 1)
}

func TestSubmit_InvalidBodyAndEmptySet(t *testing.T) {
	app, token, _ := newApp(t)

	code, env := call(t, app, "POST", "/api/quiz/submit", token, map[string]any{
		"answers": map[string]any{"nope": "x"}, "language": "go",
	})
	assert.Equal(t, 400, code)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)

	code, env = call(t, app, "POST", "/api/quiz/submit", token, map[string]any{
		"answers": map[string]any{}, "language": "go",
	})
	require.Equal(t, 200, code, env.Message)
	var out map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, 0.0, out["totalQuestions"])
	assert.Equal(t, 0.0, out["percentage"])
	assert.NotContains(t, out, "resultId")
}

func TestQuestions_EmptyLanguage(t *testing.T) {
	app, token, _ := newApp(t)
	code, env := call(t, app, "GET", "/api/quiz/questions/rust", token, nil)
	assert.Equal(t, 200, code)
	assert.JSONEq(t, `[]`, string(env.Data))
}
