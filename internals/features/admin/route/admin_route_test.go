package route

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quizku_backend/internals/constants"
	adminService "quizku_backend/internals/features/admin/service"
	certService "quizku_backend/internals/features/certificates/service"
	"quizku_backend/internals/features/notifications"
	resultModel "quizku_backend/internals/features/quiz/results/model"
	authDto "quizku_backend/internals/features/users/auth/dto"
	authService "quizku_backend/internals/features/users/auth/service"
	userModel "quizku_backend/internals/features/users/user/model"
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

type harness struct {
	app        *fiber.App
	db         *gorm.DB
	admin, ana string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.OpenDB(t)
	auth := authService.New(db, "admin-secret", time.Hour, notifications.New(&testutil.Mailer{}))
	ctx := context.Background()

	token := func(email string) string {
		_, err := auth.Register(ctx, authDto.RegisterRequest{Email: email, Password: "secret1"})
		require.NoError(t, err)
		if email == "root@example.com" {
			require.NoError(t, db.Model(&userModel.UserModel{}).
				Where("user_name = ?", email).Update("role", constants.RoleAdmin).Error)
		}
		out, err := auth.Login(ctx, authDto.LoginRequest{Username: email, Password: "secret1"})
		require.NoError(t, err)
		return out.Token
	}

	store, err := certService.NewStore(t.TempDir())
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	admin := app.Group("/api/admin",
		authMw.AuthJWT(authMw.AuthJWTOpts{Auth: auth}),
		authMw.OnlyRoles("Access denied. Admin only.", constants.RoleAdmin),
	)
	AdminRoutes(admin, adminService.New(db, certService.New(store, "http://localhost")))

	return &harness{app: app, db: db, admin: token("root@example.com"), ana: token("ana@example.com")}
}

func (h *harness) do(t *testing.T, method, path, token string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestAdminGate(t *testing.T) {
	h := newHarness(t)

	code, _ := h.do(t, "GET", "/api/admin/statistics", "")
	assert.Equal(t, 401, code)

	code, env := h.do(t, "GET", "/api/admin/statistics", h.ana)
	assert.Equal(t, 403, code)
	assert.Equal(t, "Access denied. Admin only.", env.Message)

	code, env = h.do(t, "GET", "/api/admin/statistics", h.admin)
	require.Equal(t, 200, code)
	assert.JSONEq(t, `{"averageScore":0,"totalQuizzesTaken":0,"topPerformers":[]}`, string(env.Data))
}

func TestBlockUnblock(t *testing.T) {
	h := newHarness(t)

	code, env := h.do(t, "PUT", "/api/admin/users/ana@example.com/block", h.admin)
	require.Equal(t, 200, code)
	assert.Equal(t, "User ana@example.com has been blocked.", env.Message)

	code, env = h.do(t, "PUT", "/api/admin/users/ana@example.com/unblock", h.admin)
	require.Equal(t, 200, code)
	assert.Equal(t, "User ana@example.com has been unblocked.", env.Message)

	code, _ = h.do(t, "PUT", "/api/admin/users/ghost/block", h.admin)
	assert.Equal(t, 404, code)
}

func TestResultsEndpoints(t *testing.T) {
	h := newHarness(t)
	var ana userModel.UserModel
	require.NoError(t, h.db.Where("user_name = ?", "ana@example.com").First(&ana).Error)
	r := resultModel.QuizResultModel{
		UserID: ana.ID, Score: 3, TotalQuestions: 5, Language: "go",
		CreatedAt: time.Date(2024, time.May, 2, 9, 0, 0, 0, time.UTC),
	}
	require.NoError(t, h.db.Create(&r).Error)

	code, env := h.do(t, "GET", "/api/admin/results", h.admin)
	require.Equal(t, 200, code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 2)

	code, _ = h.do(t, "GET", "/api/admin/results/filter?startDate=bad&endDate=2024-05-02", h.admin)
	assert.Equal(t, 400, code)

	code, env = h.do(t, "GET", "/api/admin/results/filter?startDate=2024-05-01&endDate=2024-05-02", h.admin)
	require.Equal(t, 200, code)
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 1)

	code, _ = h.do(t, "GET", "/api/admin/results/search", h.admin)
	assert.Equal(t, 400, code)
	code, _ = h.do(t, "GET", "/api/admin/results/search?username=ghost", h.admin)
	assert.Equal(t, 404, code)

	code, _ = h.do(t, "GET", "/api/admin/user-quiz-details/not-a-uuid", h.admin)
	assert.Equal(t, 400, code)
	code, _ = h.do(t, "GET", "/api/admin/user-quiz-details/"+ana.ID.String(), h.admin)
	assert.Equal(t, 200, code)

	req := httptest.NewRequest("GET", "/api/admin/results/export/ana@example.com", nil)
	req.Header.Set("Authorization", "Bearer "+h.admin)
	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(body[:4]))

	code, _ = h.do(t, "DELETE", "/api/admin/results/ana@example.com/"+r.ID.String(), h.admin)
	assert.Equal(t, 200, code)
	code, _ = h.do(t, "DELETE", "/api/admin/results/ana@example.com/"+r.ID.String(), h.admin)
	assert.Equal(t, 404, code)
}
