package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"educlub_backend/internals/features/scheduling/notifications/controller"
)

func NotificationRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewNotificationController(db)

	api.Get("/notifications", ctrl.List)
	api.Patch("/notifications/:id", ctrl.MarkRead)
	api.Post("/notifications/:id/act", ctrl.Act)
}
