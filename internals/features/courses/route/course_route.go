package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"educlub_backend/internals/features/courses/controller"
)

// CourseRoutes registers the public catalog endpoint.
func CourseRoutes(public fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCourseController(db)

	public.Get("/courses", ctrl.List)
}

// ProtectedCourseRoutes registers the endpoints that need a signed-in user.
func ProtectedCourseRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCourseController(db)

	api.Get("/courses/overview", ctrl.Overview)
	api.Get("/course-participants", ctrl.Participants)
}
