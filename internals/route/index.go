package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	forumRoute "educlub_backend/internals/features/community/forums/route"
	ratingRoute "educlub_backend/internals/features/community/ratings/route"
	courseRoute "educlub_backend/internals/features/courses/route"
	resourceRoute "educlub_backend/internals/features/resources/route"
	notifRoute "educlub_backend/internals/features/scheduling/notifications/route"
	reportRoute "educlub_backend/internals/features/scheduling/reports/route"
	resvRoute "educlub_backend/internals/features/scheduling/reservations/route"
	sessionRoute "educlub_backend/internals/features/scheduling/sessions/route"
	authRoute "educlub_backend/internals/features/users/auth/route"
	directoryRoute "educlub_backend/internals/features/users/directory/route"
	profileRoute "educlub_backend/internals/features/users/profile/route"
	authmw "educlub_backend/internals/middlewares/auth"
)

// SetupRoutes registers the whole API surface. Public endpoints go on the
// bare /api group; everything else sits behind the session middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	public := app.Group("/api")
	authRoute.AuthRoutes(public, db)
	courseRoute.CourseRoutes(public, db)

	api := app.Group("/api", authmw.SessionAuth(db))
	courseRoute.ProtectedCourseRoutes(api, db)
	profileRoute.ProfileRoutes(api, db)
	directoryRoute.DirectoryRoutes(api, db)
	sessionRoute.SessionRoutes(api, db)
	resvRoute.ReservationRoutes(api, db)
	notifRoute.NotificationRoutes(api, db)
	reportRoute.ReportRoutes(api, db)
	forumRoute.ForumRoutes(api, db)
	ratingRoute.RatingRoutes(api, db)
	resourceRoute.ResourceRoutes(api, db)
}
