package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"educlub_backend/internals/features/community/ratings/controller"
)

func RatingRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewRatingController(db)

	api.Post("/ratings", ctrl.Submit)
	api.Get("/ratings", ctrl.Summary)
}
