package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"educlub_backend/internals/features/scheduling/sessions/dto"
	sessModel "educlub_backend/internals/features/scheduling/sessions/model"
)

type fakeScheduler struct {
	res   *dto.ScheduleResult
	err   error
	calls int
}

func (f *fakeScheduler) Schedule(_ context.Context, _ *dto.ScheduleInput) (*dto.ScheduleResult, error) {
	f.calls++
	return f.res, f.err
}

func scheduleInput() *dto.ScheduleInput {
	return &dto.ScheduleInput{
		ActorID:        7,
		CourseCode:     "MAT101",
		CounterpartyID: 42,
		ScheduledAt:    time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC),
		DurationMin:    60,
		Platform:       sessModel.PlatformMeet,
		ActorIsHost:    true,
	}
}

func TestScheduleHappyPathPassesThrough(t *testing.T) {
	want := &dto.ScheduleResult{Session: dto.SessionView{SessionID: 11}}
	db := &fakeScheduler{res: want}
	svc := &SchedulerService{db: db, stub: stubScheduler{}, allowStub: true}

	got, err := svc.Schedule(context.Background(), scheduleInput())
	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Equal(t, 1, db.calls)
}

func TestScheduleUnknownCourseNeverDegrades(t *testing.T) {
	db := &fakeScheduler{err: ErrUnknownCourse}
	svc := &SchedulerService{db: db, stub: stubScheduler{}, allowStub: true}

	_, err := svc.Schedule(context.Background(), scheduleInput())
	assert.ErrorIs(t, err, ErrUnknownCourse)
}

func TestScheduleDegradesToStubWhenAllowed(t *testing.T) {
	db := &fakeScheduler{err: errors.New("connection refused")}
	svc := &SchedulerService{db: db, stub: stubScheduler{}, allowStub: true}

	in := scheduleInput()
	res, err := svc.Schedule(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, int64(0), res.Session.SessionID)
	assert.Equal(t, sessModel.StatusScheduled, res.Session.Status)
	assert.Equal(t, int64(7), res.Session.HostID)
	assert.Equal(t, int64(42), res.Session.GuestID)
	assert.Nil(t, res.ReservationID)
	assert.NotEmpty(t, res.Warning)
	assert.NotEmpty(t, res.Session.JoinURL)
}

func TestScheduleSurfacesErrorWhenStubDisabled(t *testing.T) {
	dbErr := errors.New("connection refused")
	db := &fakeScheduler{err: dbErr}
	svc := &SchedulerService{db: db, stub: stubScheduler{}, allowStub: false}

	_, err := svc.Schedule(context.Background(), scheduleInput())
	assert.ErrorIs(t, err, dbErr)
}

func TestStubSchedulerKeepsForcedJoinURL(t *testing.T) {
	in := scheduleInput()
	in.JoinURL = "https://meet.jit.si/custom"

	res, err := stubScheduler{}.Schedule(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "https://meet.jit.si/custom", res.Session.JoinURL)

	in.JoinURL = ""
	res, err = stubScheduler{}.Schedule(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Session.JoinURL, "https://meet.google.com/"))
}

func TestStubSchedulerGuestHostSwap(t *testing.T) {
	in := scheduleInput()
	in.ActorIsHost = false

	res, err := stubScheduler{}.Schedule(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.Session.HostID)
	assert.Equal(t, int64(7), res.Session.GuestID)
}

func TestTriggerHint(t *testing.T) {
	assert.Empty(t, TriggerHint(nil))
	assert.Empty(t, TriggerHint(errors.New("deadlock detected")))

	err := errors.New(`pq: record "NEW" has no field "tutor_id"`)
	assert.NotEmpty(t, TriggerHint(err))
}
