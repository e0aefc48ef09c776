package controller

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	resvService "educlub_backend/internals/features/scheduling/reservations/service"
	authmw "educlub_backend/internals/middlewares/auth"
)

type fakeResponder struct {
	out     *resvService.RespondResult
	err     error
	userID  int64
	notifID int64
	action  string
}

func (f *fakeResponder) Respond(_ context.Context, userID, notificationID int64, action string) (*resvService.RespondResult, error) {
	f.userID = userID
	f.notifID = notificationID
	f.action = action
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func testApp(t *testing.T, r responder) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("session", authmw.Session{UserID: 7, IsAuthenticated: true})
		return c.Next()
	})

	ctrl := &NotificationController{Reservations: r}
	app.Patch("/api/notifications/:id", ctrl.MarkRead)
	app.Post("/api/notifications/:id/act", ctrl.Act)
	return app
}

func postAct(t *testing.T, app *fiber.App, target, body string) (int, map[string]interface{}) {
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

func TestMarkReadRequiresReadField(t *testing.T) {
	app := testApp(t, &fakeResponder{})

	req := httptest.NewRequest("PATCH", "/api/notifications/3", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMarkReadRejectsBadID(t *testing.T) {
	app := testApp(t, &fakeResponder{})

	req := httptest.NewRequest("PATCH", "/api/notifications/abc", strings.NewReader(`{"read":true}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestActRejectsUnknownAction(t *testing.T) {
	app := testApp(t, &fakeResponder{})

	code, body := postAct(t, app, "/api/notifications/3/act", `{"action":"maybe"}`)
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Equal(t, false, body["ok"])
}

func TestActAcceptNeedsOnlyTheAction(t *testing.T) {
	rid := int64(12)
	fake := &fakeResponder{out: &resvService.RespondResult{
		Result:        resvService.ResultAccepted,
		Status:        "reserved",
		ReservationID: &rid,
	}}
	app := testApp(t, fake)

	code, body := postAct(t, app, "/api/notifications/3/act", `{"action":"accept"}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "accepted", body["result"])
	assert.EqualValues(t, 12, body["reservation_id"])

	assert.EqualValues(t, 7, fake.userID)
	assert.EqualValues(t, 3, fake.notifID)
	assert.Equal(t, "accept", fake.action)
}

func TestActDenyReportsDenied(t *testing.T) {
	fake := &fakeResponder{out: &resvService.RespondResult{
		Result: resvService.ResultDenied,
		Status: "canceled",
	}}
	app := testApp(t, fake)

	code, body := postAct(t, app, "/api/notifications/3/act", `{"action":"deny"}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "denied", body["result"])
	assert.Nil(t, body["reservation_id"])
}

func TestActErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{resvService.ErrNotificationNotFound, fiber.StatusNotFound},
		{resvService.ErrNotActionable, fiber.StatusBadRequest},
		{resvService.ErrPayloadMissingID, fiber.StatusBadRequest},
		{resvService.ErrTerminalStatus, fiber.StatusConflict},
	}
	for _, tc := range cases {
		app := testApp(t, &fakeResponder{err: tc.err})
		code, body := postAct(t, app, "/api/notifications/3/act", `{"action":"accept"}`)
		assert.Equal(t, tc.code, code, "error %v", tc.err)
		assert.Equal(t, false, body["ok"])
	}
}
