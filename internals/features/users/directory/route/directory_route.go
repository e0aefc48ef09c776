package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"educlub_backend/internals/features/users/directory/controller"
)

func DirectoryRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewDirectoryController(db)

	api.Get("/users/lookup", ctrl.Lookup)
	api.Get("/users/list", ctrl.List)
}
