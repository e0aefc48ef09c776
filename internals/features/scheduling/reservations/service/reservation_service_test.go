package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	notifModel "educlub_backend/internals/features/scheduling/notifications/model"
	resvModel "educlub_backend/internals/features/scheduling/reservations/model"
)

// fakeStore keeps reservations keyed by (session_id, student_id) so upsert
// semantics behave like the real unique index.
type fakeStore struct {
	notifs       map[int64]*notifModel.Notification
	reservations map[[2]int64]*resvModel.Reservation
	nextID       int64
	readIDs      []int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		notifs:       map[int64]*notifModel.Notification{},
		reservations: map[[2]int64]*resvModel.Reservation{},
		nextID:       1,
	}
}

func (f *fakeStore) InTx(_ context.Context, fn func(store) error) error {
	return fn(f)
}

func (f *fakeStore) OwnedNotification(userID, notifID int64) (*notifModel.Notification, error) {
	n, ok := f.notifs[notifID]
	if !ok || n.UserID != userID {
		return nil, ErrNotificationNotFound
	}
	return n, nil
}

func (f *fakeStore) CurrentReservation(sessionID, studentID int64) (*resvModel.Reservation, error) {
	if r, ok := f.reservations[[2]int64{sessionID, studentID}]; ok {
		return r, nil
	}
	return nil, nil
}

func (f *fakeStore) UpsertReserved(sessionID, studentID int64) (int64, error) {
	key := [2]int64{sessionID, studentID}
	if r, ok := f.reservations[key]; ok {
		r.Status = resvModel.StatusReserved
		return r.ID, nil
	}
	r := &resvModel.Reservation{
		ID:        f.nextID,
		SessionID: sessionID,
		StudentID: studentID,
		Status:    resvModel.StatusReserved,
	}
	f.nextID++
	f.reservations[key] = r
	return r.ID, nil
}

func (f *fakeStore) CancelReservation(id int64) error {
	for _, r := range f.reservations {
		if r.ID == id {
			r.Status = resvModel.StatusCanceled
		}
	}
	return nil
}

func (f *fakeStore) MarkRead(notifID int64) error {
	f.readIDs = append(f.readIDs, notifID)
	return nil
}

func (f *fakeStore) seedInvite(notifID, userID, sessionID int64) {
	payload := []byte(`{"session_id": ` + strconv.FormatInt(sessionID, 10) + `}`)
	f.notifs[notifID] = &notifModel.Notification{
		ID:          notifID,
		UserID:      userID,
		Type:        notifModel.TypeSessionScheduled,
		PayloadJSON: datatypes.JSON(payload),
	}
}

func newService(f *fakeStore) *ReservationService {
	return &ReservationService{store: f}
}

func TestRespondAcceptReserves(t *testing.T) {
	f := newFakeStore()
	f.seedInvite(10, 7, 99)
	svc := newService(f)

	out, err := svc.Respond(context.Background(), 7, 10, ActionAccept)
	require.NoError(t, err)
	assert.Equal(t, ResultAccepted, out.Result)
	assert.Equal(t, resvModel.StatusReserved, out.Status)
	require.NotNil(t, out.ReservationID)
	assert.Len(t, f.reservations, 1)
	assert.Contains(t, f.readIDs, int64(10))
}

func TestRespondAcceptTwiceKeepsOneRow(t *testing.T) {
	f := newFakeStore()
	f.seedInvite(10, 7, 99)
	svc := newService(f)

	first, err := svc.Respond(context.Background(), 7, 10, ActionAccept)
	require.NoError(t, err)
	second, err := svc.Respond(context.Background(), 7, 10, ActionAccept)
	require.NoError(t, err)

	assert.Len(t, f.reservations, 1)
	assert.Equal(t, *first.ReservationID, *second.ReservationID)
	assert.Equal(t, resvModel.StatusReserved, f.reservations[[2]int64{99, 7}].Status)
}

func TestRespondDenyAfterAcceptCancels(t *testing.T) {
	f := newFakeStore()
	f.seedInvite(10, 7, 99)
	svc := newService(f)

	_, err := svc.Respond(context.Background(), 7, 10, ActionAccept)
	require.NoError(t, err)
	out, err := svc.Respond(context.Background(), 7, 10, ActionDeny)
	require.NoError(t, err)

	assert.Equal(t, ResultDenied, out.Result)
	assert.Equal(t, resvModel.StatusCanceled, f.reservations[[2]int64{99, 7}].Status)
}

func TestRespondDenyTwiceIsIdempotent(t *testing.T) {
	f := newFakeStore()
	f.seedInvite(10, 7, 99)
	svc := newService(f)

	_, err := svc.Respond(context.Background(), 7, 10, ActionAccept)
	require.NoError(t, err)
	_, err = svc.Respond(context.Background(), 7, 10, ActionDeny)
	require.NoError(t, err)
	out, err := svc.Respond(context.Background(), 7, 10, ActionDeny)
	require.NoError(t, err)

	assert.Equal(t, ResultDenied, out.Result)
	assert.Len(t, f.reservations, 1)
	assert.Equal(t, resvModel.StatusCanceled, f.reservations[[2]int64{99, 7}].Status)
}

func TestRespondDenyWithoutReservationIsNoOp(t *testing.T) {
	f := newFakeStore()
	f.seedInvite(10, 7, 99)
	svc := newService(f)

	out, err := svc.Respond(context.Background(), 7, 10, ActionDeny)
	require.NoError(t, err)
	assert.Equal(t, ResultDenied, out.Result)
	assert.Nil(t, out.ReservationID)
	assert.Empty(t, f.reservations)
}

func TestRespondDerivesSessionFromPayload(t *testing.T) {
	f := newFakeStore()
	f.seedInvite(10, 7, 1234)
	svc := newService(f)

	// no session id arrives from the client; the payload decides
	_, err := svc.Respond(context.Background(), 7, 10, ActionAccept)
	require.NoError(t, err)
	_, ok := f.reservations[[2]int64{1234, 7}]
	assert.True(t, ok)
}

func TestRespondRejectsForeignNotification(t *testing.T) {
	f := newFakeStore()
	f.seedInvite(10, 8, 99) // belongs to user 8
	svc := newService(f)

	_, err := svc.Respond(context.Background(), 7, 10, ActionAccept)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestRespondRejectsWrongType(t *testing.T) {
	f := newFakeStore()
	f.notifs[10] = &notifModel.Notification{
		ID:          10,
		UserID:      7,
		Type:        "announcement",
		PayloadJSON: datatypes.JSON(`{}`),
	}
	svc := newService(f)

	_, err := svc.Respond(context.Background(), 7, 10, ActionAccept)
	assert.ErrorIs(t, err, ErrNotActionable)
}

func TestRespondRejectsPayloadWithoutSessionID(t *testing.T) {
	f := newFakeStore()
	f.notifs[10] = &notifModel.Notification{
		ID:          10,
		UserID:      7,
		Type:        notifModel.TypeSessionScheduled,
		PayloadJSON: datatypes.JSON(`{"course_code":"MATH101"}`),
	}
	svc := newService(f)

	_, err := svc.Respond(context.Background(), 7, 10, ActionAccept)
	assert.ErrorIs(t, err, ErrPayloadMissingID)
}

func TestRespondTerminalStatusesConflict(t *testing.T) {
	for _, status := range []string{resvModel.StatusAttended, resvModel.StatusNoShow} {
		f := newFakeStore()
		f.seedInvite(10, 7, 99)
		f.reservations[[2]int64{99, 7}] = &resvModel.Reservation{
			ID: 5, SessionID: 99, StudentID: 7, Status: status,
		}
		svc := newService(f)

		_, err := svc.Respond(context.Background(), 7, 10, ActionAccept)
		assert.ErrorIs(t, err, ErrTerminalStatus, "accept over %s", status)
		_, err = svc.Respond(context.Background(), 7, 10, ActionDeny)
		assert.ErrorIs(t, err, ErrTerminalStatus, "deny over %s", status)
	}
}
