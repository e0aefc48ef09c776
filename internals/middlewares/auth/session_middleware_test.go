package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionAuthRejectsWithoutCookie(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", SessionAuth(nil), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSessionAuthRejectsMalformedToken(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", SessionAuth(nil), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// non-UUID tokens are rejected before any database lookup, which is
	// why a nil db is safe here
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "not-a-uuid"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCurrentSessionZeroWhenUnset(t *testing.T) {
	app := fiber.New()
	var got Session
	app.Get("/x", func(c *fiber.Ctx) error {
		got = CurrentSession(c)
		return c.SendString("ok")
	})

	_, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	require.NoError(t, err)
	assert.False(t, got.IsAuthenticated)
	assert.Zero(t, got.UserID)
}

func TestUUIDGate(t *testing.T) {
	assert.True(t, uuidRe.MatchString("123e4567-e89b-42d3-a456-426614174000"))
	assert.False(t, uuidRe.MatchString(""))
	assert.False(t, uuidRe.MatchString("123e4567-e89b-42d3-a456-42661417400"))
	assert.False(t, uuidRe.MatchString("' OR 1=1 --"))
}
