package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"educlub_backend/internals/features/users/profile/controller"
)

func ProfileRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewProfileController(db)

	api.Get("/profile", ctrl.Get)
	api.Patch("/profile", ctrl.Update)
	api.Get("/profile/enrollments", ctrl.Enrollments)
	api.Put("/profile/enrollments", ctrl.ReplaceEnrollments)
	api.Get("/profile/tutor-courses", ctrl.TutorCourses)
	api.Put("/profile/tutor-courses", ctrl.ReplaceTutorCourses)
}
