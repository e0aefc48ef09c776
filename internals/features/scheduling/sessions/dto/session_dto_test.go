package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func validRequest() CreateSessionRequest {
	return CreateSessionRequest{
		CourseCode:         "MAT101",
		CounterpartyUserID: 42,
		ScheduledAt:        "2025-03-01T15:00:00Z",
		DurationMin:        intPtr(60),
		Platform:           "meet",
	}
}

func TestNormalizeDefaults(t *testing.T) {
	req := CreateSessionRequest{
		CourseCode:         "MAT101",
		CounterpartyUserID: 42,
		ScheduledAt:        "2025-03-01T15:00:00Z",
	}
	in, msg := req.Normalize(7)
	require.Empty(t, msg)

	assert.Equal(t, 60, in.DurationMin)
	assert.Equal(t, "meet", in.Platform)
	assert.False(t, in.CreateReservation)
	assert.True(t, in.ActorIsHost)
	assert.Equal(t, int64(7), in.HostID())
	assert.Equal(t, int64(42), in.GuestID())
	assert.Equal(t, time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC), in.ScheduledAt)
}

func TestNormalizeFieldErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateSessionRequest)
		want   string
	}{
		{"empty course", func(r *CreateSessionRequest) { r.CourseCode = "  " }, "course_code required"},
		{"zero counterparty", func(r *CreateSessionRequest) { r.CounterpartyUserID = 0 }, "counterparty_user_id invalid"},
		{"negative counterparty", func(r *CreateSessionRequest) { r.CounterpartyUserID = -3 }, "counterparty_user_id invalid"},
		{"self counterparty", func(r *CreateSessionRequest) { r.CounterpartyUserID = 7 }, "counterparty_user_id must differ from the actor"},
		{"bad time", func(r *CreateSessionRequest) { r.ScheduledAt = "not-a-time" }, "scheduled_at invalid"},
		{"duration low", func(r *CreateSessionRequest) { r.DurationMin = intPtr(14) }, "duration_min out of range (15..240)"},
		{"duration high", func(r *CreateSessionRequest) { r.DurationMin = intPtr(241) }, "duration_min out of range (15..240)"},
		{"bad platform", func(r *CreateSessionRequest) { r.Platform = "skype" }, "platform invalid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			in, msg := req.Normalize(7)
			assert.Nil(t, in)
			assert.Equal(t, tc.want, msg)
		})
	}
}

func TestNormalizeDurationBounds(t *testing.T) {
	for _, d := range []int{15, 240} {
		req := validRequest()
		req.DurationMin = intPtr(d)
		in, msg := req.Normalize(7)
		require.Empty(t, msg)
		assert.Equal(t, d, in.DurationMin)
	}
}

func TestNormalizeHostGuestResolution(t *testing.T) {
	req := validRequest()
	req.ActorIsHost = boolPtr(false)
	in, msg := req.Normalize(7)
	require.Empty(t, msg)
	assert.Equal(t, int64(42), in.HostID())
	assert.Equal(t, int64(7), in.GuestID())

	// legacy flag applies only when actor_is_host is absent
	req = validRequest()
	req.TutorIsActor = boolPtr(false)
	in, msg = req.Normalize(7)
	require.Empty(t, msg)
	assert.False(t, in.ActorIsHost)

	req = validRequest()
	req.TutorIsActor = boolPtr(false)
	req.ActorIsHost = boolPtr(true)
	in, msg = req.Normalize(7)
	require.Empty(t, msg)
	assert.True(t, in.ActorIsHost)
}

func TestNormalizeJoinURLOverride(t *testing.T) {
	req := validRequest()
	req.JoinURL = strPtr(" https://meet.jit.si/custom ")
	in, msg := req.Normalize(7)
	require.Empty(t, msg)
	assert.Equal(t, "https://meet.jit.si/custom", in.JoinURL)
}
