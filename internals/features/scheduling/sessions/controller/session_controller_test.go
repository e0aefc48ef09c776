package controller

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmw "educlub_backend/internals/middlewares/auth"
)

func testApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("session", authmw.Session{UserID: 42, IsAuthenticated: true})
		return c.Next()
	})

	ctrl := NewSessionController(nil)
	app.Post("/api/sessions", ctrl.Create)
	app.Get("/api/sessions/:id", ctrl.Detail)
	return app
}

func postJSON(t *testing.T, app *fiber.App, target, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, sonic.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestCreateNamesMissingCourseCode(t *testing.T) {
	app := testApp(t)

	code, body := postJSON(t, app, "/api/sessions",
		`{"counterparty_user_id": 9, "scheduled_at": "2026-09-01T10:00:00Z"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, false, body["ok"])
	assert.Contains(t, body["error"], "course_code")
}

func TestCreateRejectsSelfCounterparty(t *testing.T) {
	app := testApp(t)

	code, body := postJSON(t, app, "/api/sessions",
		`{"course_code": "MATH101", "counterparty_user_id": 42, "scheduled_at": "2026-09-01T10:00:00Z"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Contains(t, body["error"], "counterparty_user_id")
}

func TestCreateRejectsBadDuration(t *testing.T) {
	app := testApp(t)

	code, body := postJSON(t, app, "/api/sessions",
		`{"course_code": "MATH101", "counterparty_user_id": 9, "scheduled_at": "2026-09-01T10:00:00Z", "duration_min": 5}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Contains(t, body["error"], "duration_min")
}

func TestDetailRejectsBadID(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/sessions/zero", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
