package controller

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"educlub_backend/internals/features/scheduling/notifications/dto"
	notifModel "educlub_backend/internals/features/scheduling/notifications/model"
	resvService "educlub_backend/internals/features/scheduling/reservations/service"
	helper "educlub_backend/internals/helpers"
	authmw "educlub_backend/internals/middlewares/auth"
)

const listCap = 200

// responder answers session invitations; satisfied by the reservation service.
type responder interface {
	Respond(ctx context.Context, userID, notificationID int64, action string) (*resvService.RespondResult, error)
}

type NotificationController struct {
	DB           *gorm.DB
	Reservations responder
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db, Reservations: resvService.NewReservationService(db)}
}

// GET /api/notifications?unread=1
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	q := ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ?", session.UserID)
	if c.Query("unread") == "1" {
		q = q.Where("read_at IS NULL")
	}

	var items []notifModel.Notification
	err := q.Order("(read_at IS NULL) DESC, created_at DESC").
		Limit(listCap).
		Find(&items).Error
	if err != nil {
		log.Printf("[ERROR] GET /api/notifications: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []notifModel.Notification{}
	}

	var unread int64
	err = ctrl.DB.WithContext(c.UserContext()).
		Model(&notifModel.Notification{}).
		Where("user_id = ? AND read_at IS NULL", session.UserID).
		Count(&unread).Error
	if err != nil {
		log.Printf("[ERROR] notifications unread count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, fiber.Map{
		"notifications": items,
		"unread_count":  unread,
	})
}

// PATCH /api/notifications/:id
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}

	var req dto.MarkReadRequest
	if err := c.BodyParser(&req); err != nil || req.Read == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "read required")
	}

	var readAt interface{}
	if *req.Read {
		readAt = time.Now()
	}
	res := ctrl.DB.WithContext(c.UserContext()).
		Model(&notifModel.Notification{}).
		Where("id = ? AND user_id = ?", id, session.UserID).
		Update("read_at", readAt)
	if res.Error != nil {
		log.Printf("[ERROR] PATCH /api/notifications/%d: %v", id, res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Not found")
	}
	return helper.JsonOK(c, fiber.Map{"read": *req.Read})
}

// POST /api/notifications/:id/act — accept or deny a session invitation
func (ctrl *NotificationController) Act(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid ID")
	}

	var req dto.ActRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if req.Action != resvService.ActionAccept && req.Action != resvService.ActionDeny {
		return helper.JsonError(c, fiber.StatusBadRequest, "action must be accept or deny")
	}

	out, err := ctrl.Reservations.Respond(c.UserContext(), session.UserID, id, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, resvService.ErrNotificationNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, resvService.ErrNotActionable),
			errors.Is(err, resvService.ErrPayloadMissingID):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, resvService.ErrTerminalStatus):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		}
		log.Printf("[ERROR] POST /api/notifications/%d/act: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, fiber.Map{
		"result":         out.Result,
		"reservation_id": out.ReservationID,
	})
}
