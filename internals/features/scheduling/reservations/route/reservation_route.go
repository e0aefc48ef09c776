package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"educlub_backend/internals/features/scheduling/reservations/controller"
)

func ReservationRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewReservationController(db)

	api.Get("/reservations/status", ctrl.StatusBatch)
}
