package controller

import (
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "educlub_backend/internals/helpers"
	authmw "educlub_backend/internals/middlewares/auth"
)

type RatingController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewRatingController(db *gorm.DB) *RatingController {
	return &RatingController{DB: db, Validate: validator.New()}
}

type submitRatingRequest struct {
	RateeID       int64   `json:"ratee_id" validate:"required,gt=0"`
	SessionID     *int64  `json:"session_id" validate:"omitempty,gt=0"`
	ReservationID *int64  `json:"reservation_id" validate:"omitempty,gt=0"`
	Score         int     `json:"score" validate:"required,min=1,max=5"`
	Comment       *string `json:"comment" validate:"omitempty,max=2000"`
}

// POST /api/ratings — one rating per (rater, ratee, session); repeat
// submissions overwrite.
func (ctrl *RatingController) Submit(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	var req submitRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.RateeID == session.UserID {
		return helper.JsonError(c, fiber.StatusBadRequest, "You cannot rate yourself")
	}

	// reservation_id is accepted for older clients; it resolves to the
	// reservation's session.
	sessionID := req.SessionID
	if sessionID == nil && req.ReservationID != nil {
		var sid int64
		err := ctrl.DB.WithContext(c.UserContext()).
			Raw(`SELECT session_id FROM reservations WHERE id = ?`, *req.ReservationID).
			Scan(&sid).Error
		if err != nil {
			log.Printf("[ERROR] resolve reservation %d: %v", *req.ReservationID, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		if sid == 0 {
			return helper.JsonError(c, fiber.StatusBadRequest, "reservation_id unknown")
		}
		sessionID = &sid
	}

	type ratingRow struct {
		ID    int64 `gorm:"column:id"`
		Score int   `gorm:"column:score"`
	}
	var row ratingRow
	err := ctrl.DB.WithContext(c.UserContext()).Raw(`
		INSERT INTO ratings (rater_id, tutor_id, session_id, score, comment)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (rater_id, tutor_id, session_id)
		DO UPDATE SET score = EXCLUDED.score, comment = EXCLUDED.comment
		RETURNING id, score`,
		session.UserID, req.RateeID, sessionID, req.Score, req.Comment).Scan(&row).Error
	if err != nil {
		log.Printf("[ERROR] POST /api/ratings: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, fiber.Map{"rating": fiber.Map{"id": row.ID, "score": row.Score}})
}

type ratingSummaryRow struct {
	AvgStars *float64 `gorm:"column:avg_stars" json:"avg_stars"`
	Total    int64    `gorm:"column:total" json:"total"`
}

type recentRatingRow struct {
	Score     int     `gorm:"column:score" json:"score"`
	Comment   *string `gorm:"column:comment" json:"comment"`
	RaterName string  `gorm:"column:rater_name" json:"rater_name"`
	CreatedAt string  `gorm:"column:created_at" json:"created_at"`
}

// GET /api/ratings?user_id=
func (ctrl *RatingController) Summary(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "user_id required")
	}

	var summary ratingSummaryRow
	err = ctrl.DB.WithContext(c.UserContext()).Raw(`
		SELECT AVG(score)::float8 AS avg_stars, COUNT(1) AS total
		FROM ratings WHERE tutor_id = ?`, userID).Scan(&summary).Error
	if err != nil {
		log.Printf("[ERROR] GET /api/ratings summary: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var recent []recentRatingRow
	err = ctrl.DB.WithContext(c.UserContext()).Raw(`
		SELECT r.score, r.comment,
		       COALESCE(u.first_name || ' ' || u.last_name, '') AS rater_name,
		       to_char(r.created_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"') AS created_at
		FROM ratings r
		LEFT JOIN users u ON u.id = r.rater_id
		WHERE r.tutor_id = ?
		ORDER BY r.created_at DESC
		LIMIT 10`, userID).Scan(&recent).Error
	if err != nil {
		log.Printf("[ERROR] GET /api/ratings recent: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if recent == nil {
		recent = []recentRatingRow{}
	}

	return helper.JsonOK(c, fiber.Map{
		"summary": summary,
		"recent":  recent,
	})
}
