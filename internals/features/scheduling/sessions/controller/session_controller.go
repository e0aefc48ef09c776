package controller

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"educlub_backend/internals/configs"
	"educlub_backend/internals/features/scheduling/sessions/dto"
	sessModel "educlub_backend/internals/features/scheduling/sessions/model"
	"educlub_backend/internals/features/scheduling/sessions/service"
	helper "educlub_backend/internals/helpers"
	"educlub_backend/internals/helpers/meeting"
	authmw "educlub_backend/internals/middlewares/auth"
)

type SessionController struct {
	DB        *gorm.DB
	Scheduler *service.SchedulerService
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{DB: db, Scheduler: service.NewSchedulerService(db)}
}

// POST /api/sessions — scheduling orchestrator
func (ctrl *SessionController) Create(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}

	in, msg := req.Normalize(session.UserID)
	if msg != "" {
		return helper.JsonError(c, fiber.StatusBadRequest, msg)
	}

	res, err := ctrl.Scheduler.Schedule(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, service.ErrUnknownCourse) {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		log.Printf("[ERROR] POST /api/sessions: %v", err)
		if hint := service.TriggerHint(err); hint != "" {
			return helper.JsonErrorWithHint(c, fiber.StatusInternalServerError,
				"Invalid database trigger: NEW.tutor_id does not exist", hint)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	body := fiber.Map{
		"session":        res.Session,
		"reservation_id": res.ReservationID,
	}
	if res.Warning != "" {
		body["warning"] = res.Warning
	}
	return helper.JsonOK(c, body)
}

// GET /api/sessions?from&to — calendar window, default current month
func (ctrl *SessionController) List(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid dates")
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid dates")
		}
		to = t
	}

	var rows []dto.SessionListItem
	err := ctrl.DB.WithContext(c.UserContext()).Raw(`
		WITH host AS (
			SELECT s.id AS session_id, s.scheduled_at, s.duration_min, s.platform,
			       s.join_url, c.code AS course_code, c.name AS course_name,
			       'host'::text AS role
			FROM tutoring_sessions s
			JOIN courses c ON c.id = s.course_id
			WHERE s.tutor_id = ?
			  AND s.scheduled_at BETWEEN ? AND ?
		),
		guest AS (
			SELECT s.id AS session_id, s.scheduled_at, s.duration_min, s.platform,
			       s.join_url, c.code AS course_code, c.name AS course_name,
			       'guest'::text AS role
			FROM tutoring_sessions s
			JOIN reservations r ON r.session_id = s.id AND r.student_id = ? AND r.status <> 'canceled'
			JOIN courses c ON c.id = s.course_id
			WHERE s.scheduled_at BETWEEN ? AND ?
		)
		SELECT * FROM host
		UNION ALL
		SELECT * FROM guest
		ORDER BY scheduled_at ASC`,
		session.UserID, from, to,
		session.UserID, from, to).Scan(&rows).Error
	if err != nil {
		log.Printf("[ERROR] GET /api/sessions: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if rows == nil {
		rows = []dto.SessionListItem{}
	}
	return helper.JsonOK(c, fiber.Map{"sessions": rows})
}

// GET /api/sessions/:id — detail with lazy join-link repair
func (ctrl *SessionController) Detail(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	sid, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || sid <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}

	var sess sessModel.TutoringSession
	if err := ctrl.DB.WithContext(c.UserContext()).First(&sess, sid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Not found")
		}
		log.Printf("[ERROR] GET /api/sessions/%d: %v", sid, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// host, or a guest with a live reservation
	if sess.TutorID != session.UserID {
		var n int64
		err := ctrl.DB.WithContext(c.UserContext()).Raw(`
			SELECT COUNT(1) FROM reservations
			WHERE session_id = ? AND student_id = ? AND status <> 'canceled'`,
			sid, session.UserID).Scan(&n).Error
		if err != nil {
			log.Printf("[ERROR] session access check: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if n == 0 {
			return helper.JsonError(c, fiber.StatusForbidden, "Not authorized")
		}
	}

	if err := service.RepairJoinLink(ctrl.DB.WithContext(c.UserContext()), &sess); err != nil {
		log.Printf("[ERROR] join link repair for session %d: %v", sid, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	body := fiber.Map{"session": fiber.Map{
		"session_id":   sess.ID,
		"scheduled_at": sess.ScheduledAt,
		"duration_min": sess.DurationMin,
		"platform":     sess.Platform,
		"join_url":     sess.JoinURL,
		"room_name":    sess.RoomName,
		"status":       sess.Status,
	}}

	// webrtc deployments can gate rooms behind signed tokens
	if sess.Platform == sessModel.PlatformWebRTC && configs.MeetingJWTSecret != "" {
		tok, err := meeting.RoomToken(configs.MeetingJWTSecret, sess.RoomName, session.UserID, 2*time.Hour)
		if err == nil && tok != "" {
			body["room_token"] = tok
		}
	}
	return helper.JsonOK(c, body)
}
