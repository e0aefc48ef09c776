package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"educlub_backend/internals/features/resources/controller"
)

func ResourceRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewResourceController(db)

	api.Post("/resources/presign", ctrl.PresignResource)
	api.Post("/uploads/presign", ctrl.PresignUpload)
	api.Post("/uploads/avatar", ctrl.UploadAvatar)
}
