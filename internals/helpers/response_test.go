package helper

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHandler(t *testing.T, h fiber.Handler) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, sonic.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestJsonOKEnvelope(t *testing.T) {
	code, body := runHandler(t, func(c *fiber.Ctx) error {
		return JsonOK(c, fiber.Map{"value": "x"})
	})
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "x", body["value"])
}

func TestJsonCreated(t *testing.T) {
	code, body := runHandler(t, func(c *fiber.Ctx) error {
		return JsonCreated(c, fiber.Map{"id": 1})
	})
	assert.Equal(t, fiber.StatusCreated, code)
	assert.Equal(t, true, body["ok"])
}

func TestJsonErrorEnvelope(t *testing.T) {
	code, body := runHandler(t, func(c *fiber.Ctx) error {
		return JsonError(c, fiber.StatusNotFound, "Not found")
	})
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Not found", body["error"])
	assert.NotContains(t, body, "hint")
}

func TestJsonErrorDefaultsMessage(t *testing.T) {
	_, body := runHandler(t, func(c *fiber.Ctx) error {
		return JsonError(c, fiber.StatusInternalServerError, "")
	})
	assert.Equal(t, "Internal error", body["error"])
}

func TestJsonErrorWithHint(t *testing.T) {
	code, body := runHandler(t, func(c *fiber.Ctx) error {
		return JsonErrorWithHint(c, fiber.StatusInternalServerError, "boom", "check the trigger")
	})
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.Equal(t, "boom", body["error"])
	assert.Equal(t, "check the trigger", body["hint"])
}
