package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"educlub_backend/internals/features/community/forums/controller"
)

func ForumRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewForumController(db)

	api.Get("/forums", ctrl.ListThreads)
	api.Post("/forums", ctrl.CreateThread)
	api.Get("/forums/:id", ctrl.ThreadDetail)
	api.Get("/forums/:id/comments", ctrl.ListComments)
	api.Post("/forums/:id/comments", ctrl.CreateComment)
	api.Post("/forums/:id/like", ctrl.ToggleThreadLike)
	api.Post("/forums/comments/:commentId/like", ctrl.ToggleCommentLike)
}
