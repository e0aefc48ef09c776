package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"educlub_backend/internals/features/scheduling/sessions/controller"
)

func SessionRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewSessionController(db)

	api.Post("/sessions", ctrl.Create)
	api.Get("/sessions", ctrl.List)
	api.Get("/sessions/:id", ctrl.Detail)
}
