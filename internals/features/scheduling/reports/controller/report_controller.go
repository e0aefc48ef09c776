package controller

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	resvModel "educlub_backend/internals/features/scheduling/reservations/model"
	helper "educlub_backend/internals/helpers"
	authmw "educlub_backend/internals/middlewares/auth"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

type sessionReportRow struct {
	SessionID        int64     `gorm:"column:session_id" json:"session_id"`
	ScheduledAt      time.Time `gorm:"column:scheduled_at" json:"scheduled_at"`
	DurationMin      int       `gorm:"column:duration_min" json:"duration_min"`
	Platform         string    `gorm:"column:platform" json:"platform"`
	CourseCode       string    `gorm:"column:course_code" json:"course_code"`
	CourseName       string    `gorm:"column:course_name" json:"course_name"`
	Role             string    `gorm:"column:role" json:"role"`
	CounterpartyName string    `gorm:"column:counterparty_name" json:"counterparty_name"`
	Status           *string   `gorm:"column:status" json:"status"`
}

// sessionReportQuery builds the hosted+attended union. The hosted side picks
// one reservation per session via LATERAL, so a session with several
// reservations still emits a single report row; the attended side carries the
// actor's own reservation.
func sessionReportQuery(cond string, withStatus bool) string {
	query := `
		WITH hosted AS (
			SELECT s.id AS session_id, s.scheduled_at, s.duration_min, s.platform,
			       c.code AS course_code, c.name AS course_name,
			       'host'::text AS role,
			       COALESCE(gu.first_name || ' ' || gu.last_name, '') AS counterparty_name,
			       r.status
			FROM tutoring_sessions s
			JOIN courses c ON c.id = s.course_id
			LEFT JOIN LATERAL (
				SELECT r0.student_id, r0.status
				FROM reservations r0
				WHERE r0.session_id = s.id
				ORDER BY r0.created_at ASC
				LIMIT 1
			) r ON true
			LEFT JOIN users gu ON gu.id = r.student_id
			WHERE s.tutor_id = ? AND ` + cond + `
		),
		attended AS (
			SELECT s.id AS session_id, s.scheduled_at, s.duration_min, s.platform,
			       c.code AS course_code, c.name AS course_name,
			       'guest'::text AS role,
			       COALESCE(hu.first_name || ' ' || hu.last_name, '') AS counterparty_name,
			       r.status
			FROM reservations r
			JOIN tutoring_sessions s ON s.id = r.session_id
			JOIN courses c ON c.id = s.course_id
			LEFT JOIN users hu ON hu.id = s.tutor_id
			WHERE r.student_id = ? AND ` + cond + `
		)
		SELECT * FROM hosted
		UNION ALL
		SELECT * FROM attended`
	if withStatus {
		query = `SELECT * FROM (` + query + `) u WHERE u.status = ?`
	}
	return query + ` ORDER BY scheduled_at DESC LIMIT 500`
}

// GET /api/reports/sessions?course_id&from&to&status — session history for
// the actor, hosted and attended. Unparseable filters are ignored rather
// than rejected.
func (ctrl *ReportController) Sessions(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	where := []string{"1=1"}
	args := []interface{}{}

	if v := c.Query("course_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			where = append(where, "s.course_id = ?")
			args = append(args, id)
		}
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			where = append(where, "s.scheduled_at >= ?")
			args = append(args, t)
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			where = append(where, "s.scheduled_at <= ?")
			args = append(args, t)
		}
	}
	statusFilter := ""
	if v := c.Query("status"); v != "" && resvModel.IsValidStatus(v) {
		statusFilter = v
	}

	query := sessionReportQuery(strings.Join(where, " AND "), statusFilter != "")

	bind := []interface{}{session.UserID}
	bind = append(bind, args...)
	bind = append(bind, session.UserID)
	bind = append(bind, args...)
	if statusFilter != "" {
		bind = append(bind, statusFilter)
	}

	var rows []sessionReportRow
	if err := ctrl.DB.WithContext(c.UserContext()).Raw(query, bind...).Scan(&rows).Error; err != nil {
		log.Printf("[ERROR] GET /api/reports/sessions: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if rows == nil {
		rows = []sessionReportRow{}
	}
	return helper.JsonOK(c, fiber.Map{"sessions": rows})
}
