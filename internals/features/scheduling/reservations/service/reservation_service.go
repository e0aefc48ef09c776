package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	notifModel "educlub_backend/internals/features/scheduling/notifications/model"
	resvModel "educlub_backend/internals/features/scheduling/reservations/model"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotActionable        = errors.New("notification is not actionable")
	ErrPayloadMissingID     = errors.New("notification payload missing session_id")
	ErrTerminalStatus       = errors.New("reservation already settled")
)

const (
	ActionAccept = "accept"
	ActionDeny   = "deny"

	ResultAccepted = "accepted"
	ResultDenied   = "denied"
)

// store is the persistence surface Respond runs against. InTx hands the
// callback a store bound to one transaction.
type store interface {
	InTx(ctx context.Context, fn func(store) error) error
	OwnedNotification(userID, notifID int64) (*notifModel.Notification, error)
	CurrentReservation(sessionID, studentID int64) (*resvModel.Reservation, error)
	UpsertReserved(sessionID, studentID int64) (int64, error)
	CancelReservation(id int64) error
	MarkRead(notifID int64) error
}

// ======================= GORM STORE =======================

type dbStore struct {
	db *gorm.DB
}

func (s *dbStore) InTx(ctx context.Context, fn func(store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&dbStore{db: tx})
	})
}

func (s *dbStore) OwnedNotification(userID, notifID int64) (*notifModel.Notification, error) {
	var notif notifModel.Notification
	err := s.db.Where("id = ? AND user_id = ?", notifID, userID).First(&notif).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (s *dbStore) CurrentReservation(sessionID, studentID int64) (*resvModel.Reservation, error) {
	var current resvModel.Reservation
	err := s.db.Where("session_id = ? AND student_id = ?", sessionID, studentID).
		First(&current).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &current, nil
}

func (s *dbStore) UpsertReserved(sessionID, studentID int64) (int64, error) {
	var id int64
	err := s.db.Raw(`
		INSERT INTO reservations (session_id, student_id, status)
		VALUES (?, ?, 'reserved')
		ON CONFLICT (session_id, student_id)
		DO UPDATE SET status = EXCLUDED.status
		RETURNING id`, sessionID, studentID).Scan(&id).Error
	return id, err
}

func (s *dbStore) CancelReservation(id int64) error {
	return s.db.Model(&resvModel.Reservation{}).
		Where("id = ?", id).
		Update("status", resvModel.StatusCanceled).Error
}

func (s *dbStore) MarkRead(notifID int64) error {
	return s.db.Model(&notifModel.Notification{}).
		Where("id = ? AND read_at IS NULL", notifID).
		Update("read_at", time.Now()).Error
}

// ======================= WORKFLOW =======================

type ReservationService struct {
	store store
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{store: &dbStore{db: db}}
}

type RespondResult struct {
	Result        string `json:"result"`
	Status        string `json:"status"`
	ReservationID *int64 `json:"reservation_id"`
}

// Respond answers a session_scheduled notification. The notification must
// belong to the actor; the target session comes from the notification's own
// payload. Status change and read receipt run in one transaction.
func (s *ReservationService) Respond(ctx context.Context, userID, notificationID int64, action string) (*RespondResult, error) {
	var out *RespondResult

	err := s.store.InTx(ctx, func(st store) error {
		notif, err := st.OwnedNotification(userID, notificationID)
		if err != nil {
			return err
		}
		if notif.Type != notifModel.TypeSessionScheduled {
			return ErrNotActionable
		}

		var payload struct {
			SessionID int64 `json:"session_id"`
		}
		if err := sonic.Unmarshal(notif.PayloadJSON, &payload); err != nil {
			return fmt.Errorf("notification payload: %w", err)
		}
		if payload.SessionID <= 0 {
			return ErrPayloadMissingID
		}

		current, err := st.CurrentReservation(payload.SessionID, userID)
		if err != nil {
			return err
		}

		switch action {
		case ActionAccept:
			if current != nil && !resvModel.CanAccept(current.Status) {
				return ErrTerminalStatus
			}
			id, err := st.UpsertReserved(payload.SessionID, userID)
			if err != nil {
				return err
			}
			out = &RespondResult{Result: ResultAccepted, Status: resvModel.StatusReserved, ReservationID: &id}

		case ActionDeny:
			if current != nil && !resvModel.CanDeny(current.Status) {
				return ErrTerminalStatus
			}
			if current != nil {
				if err := st.CancelReservation(current.ID); err != nil {
					return err
				}
				out = &RespondResult{Result: ResultDenied, Status: resvModel.StatusCanceled, ReservationID: &current.ID}
			} else {
				// never reserved; nothing to cancel
				out = &RespondResult{Result: ResultDenied, Status: resvModel.StatusCanceled}
			}

		default:
			return ErrNotActionable
		}

		return st.MarkRead(notif.ID)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
