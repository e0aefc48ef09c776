package service

import (
	"context"
	"errors"
	"log"
	"regexp"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"educlub_backend/internals/configs"
	courseModel "educlub_backend/internals/features/courses/model"
	notifModel "educlub_backend/internals/features/scheduling/notifications/model"
	resModel "educlub_backend/internals/features/scheduling/reservations/model"
	"educlub_backend/internals/features/scheduling/sessions/dto"
	sessModel "educlub_backend/internals/features/scheduling/sessions/model"
	"educlub_backend/internals/helpers/meeting"
)

// ErrUnknownCourse is a validation failure, not a persistence failure: it
// never triggers the stub fallback.
var ErrUnknownCourse = errors.New("course_code does not match an existing course")

const stubWarning = "database unavailable or schema incomplete: returning a non-persistent stub session"

type Scheduler interface {
	Schedule(ctx context.Context, in *dto.ScheduleInput) (*dto.ScheduleResult, error)
}

// ========================== DB PATH ==========================

// dbScheduler persists session, optional reservation and guest notification
// in one transaction.
type dbScheduler struct {
	db *gorm.DB
}

func (s *dbScheduler) Schedule(ctx context.Context, in *dto.ScheduleInput) (*dto.ScheduleResult, error) {
	var result dto.ScheduleResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course courseModel.Course
		if err := tx.Where("code = ?", in.CourseCode).First(&course).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownCourse
			}
			return err
		}

		joinURL := in.JoinURL
		roomName := ""
		if meeting.IsPlaceholderLink(joinURL) {
			roomName = meeting.NewRoomName("tutor")
			joinURL = meeting.Link(roomName)
		}

		sess := sessModel.TutoringSession{
			CourseID:    course.ID,
			TutorID:     in.HostID(),
			ScheduledAt: in.ScheduledAt,
			DurationMin: in.DurationMin,
			Platform:    in.Platform,
			JoinURL:     joinURL,
			RoomName:    roomName,
			Status:      sessModel.StatusScheduled,
		}
		if err := tx.Create(&sess).Error; err != nil {
			return err
		}

		if in.CreateReservation {
			var resID int64
			err := tx.Raw(`
				INSERT INTO reservations (session_id, student_id, status)
				VALUES (?, ?, ?)
				ON CONFLICT (session_id, student_id) DO UPDATE SET status = EXCLUDED.status
				RETURNING id`, sess.ID, in.GuestID(), resModel.StatusReserved).Scan(&resID).Error
			if err != nil {
				return err
			}
			result.ReservationID = &resID
		}

		payload, err := sonic.Marshal(map[string]any{
			"session_id":   sess.ID,
			"course_code":  course.Code,
			"course_name":  course.Name,
			"host_id":      in.HostID(),
			"guest_id":     in.GuestID(),
			"scheduled_at": sess.ScheduledAt,
		})
		if err != nil {
			return err
		}
		notif := notifModel.Notification{
			UserID:      in.GuestID(),
			Type:        notifModel.TypeSessionScheduled,
			PayloadJSON: datatypes.JSON(payload),
		}
		if err := tx.Create(&notif).Error; err != nil {
			return err
		}

		result.Session = dto.SessionView{
			SessionID:   sess.ID,
			ScheduledAt: sess.ScheduledAt,
			DurationMin: sess.DurationMin,
			Platform:    sess.Platform,
			JoinURL:     sess.JoinURL,
			Status:      sess.Status,
			HostID:      in.HostID(),
			GuestID:     in.GuestID(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ========================== STUB PATH ==========================

// stubScheduler answers without persisting anything. Demo/CI only.
type stubScheduler struct{}

func (stubScheduler) Schedule(_ context.Context, in *dto.ScheduleInput) (*dto.ScheduleResult, error) {
	link := in.JoinURL
	if link == "" {
		link = meeting.NewStubMeetLink()
	}
	return &dto.ScheduleResult{
		Session: dto.SessionView{
			SessionID:   0,
			ScheduledAt: in.ScheduledAt,
			DurationMin: in.DurationMin,
			Platform:    in.Platform,
			JoinURL:     link,
			Status:      sessModel.StatusScheduled,
			HostID:      in.HostID(),
			GuestID:     in.GuestID(),
		},
		Warning: stubWarning,
	}, nil
}

// ========================== SELECTION ==========================

// SchedulerService runs the DB path and, when allowed by configuration,
// degrades to the stub path on persistence failure.
type SchedulerService struct {
	db        Scheduler
	stub      Scheduler
	allowStub bool
}

func NewSchedulerService(db *gorm.DB) *SchedulerService {
	return &SchedulerService{
		db:        &dbScheduler{db: db},
		stub:      stubScheduler{},
		allowStub: configs.AllowStubScheduling,
	}
}

func (s *SchedulerService) Schedule(ctx context.Context, in *dto.ScheduleInput) (*dto.ScheduleResult, error) {
	res, err := s.db.Schedule(ctx, in)
	if err == nil {
		return res, nil
	}
	if errors.Is(err, ErrUnknownCourse) {
		return nil, err
	}
	if s.allowStub {
		log.Printf("[WARNING] scheduling failed, degrading to stub session: %v", err)
		return s.stub.Schedule(ctx, in)
	}
	return nil, err
}

// ========================== LINK REPAIR ==========================

// RepairJoinLink regenerates and persists the join link when the stored one
// is empty or a known placeholder. Idempotent: a repaired link never matches
// the placeholder test again.
func RepairJoinLink(db *gorm.DB, sess *sessModel.TutoringSession) error {
	if !meeting.IsPlaceholderLink(sess.JoinURL) {
		return nil
	}
	room := meeting.NewRoomName("tutor")
	link := meeting.Link(room)
	err := db.Model(&sessModel.TutoringSession{}).
		Where("id = ?", sess.ID).
		Updates(map[string]any{"room_name": room, "join_url": link}).Error
	if err != nil {
		return err
	}
	sess.RoomName = room
	sess.JoinURL = link
	return nil
}

// ========================== ERROR HINTS ==========================

var tutorTriggerRe = regexp.MustCompile(`(?i)record\s+"NEW"\s+has\s+no\s+field\s+"tutor_id"`)

// TriggerHint translates the one known trigger-misconfiguration error into an
// actionable hint; empty string for everything else.
func TriggerHint(err error) string {
	if err != nil && tutorTriggerRe.MatchString(err.Error()) {
		return "A trigger on tutoring_sessions/reservations references NEW.tutor_id on a table without that column. List those triggers and disable or fix the offending one."
	}
	return ""
}
