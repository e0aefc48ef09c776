package controller

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	helper "educlub_backend/internals/helpers"
	authmw "educlub_backend/internals/middlewares/auth"
)

type ReservationController struct {
	DB *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

// GET /api/reservations/status?session_ids=1,2,3 — the actor's own status
// per session, for calendar badges.
func (ctrl *ReservationController) StatusBatch(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	raw := strings.Split(c.Query("session_ids"), ",")
	ids := make([]int64, 0, len(raw))
	seen := make(map[int64]struct{}, len(raw))
	for _, part := range raw {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return helper.JsonOK(c, fiber.Map{"statuses": []fiber.Map{}})
	}

	type row struct {
		SessionID int64  `gorm:"column:session_id" json:"session_id"`
		Status    string `gorm:"column:status" json:"status"`
	}
	var rows []row
	err := ctrl.DB.WithContext(c.UserContext()).Raw(`
		SELECT session_id, status
		FROM reservations
		WHERE student_id = ? AND session_id = ANY(?::bigint[])`,
		session.UserID, pq.Array(ids)).Scan(&rows).Error
	if err != nil {
		log.Printf("[ERROR] GET /api/reservations/status: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if rows == nil {
		rows = []row{}
	}
	return helper.JsonOK(c, fiber.Map{"statuses": rows})
}
