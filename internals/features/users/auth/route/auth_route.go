package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"educlub_backend/internals/features/users/auth/controller"
	"educlub_backend/internals/middlewares"
)

func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuthController(db)

	api.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	api.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	api.Post("/auth/google", middlewares.LoginRateLimiter(), ctrl.GoogleLogin)
	api.Post("/logout", ctrl.Logout)
	api.Get("/auth/session", ctrl.SessionInfo)
}
