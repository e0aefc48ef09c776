package controller

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	courseModel "educlub_backend/internals/features/courses/model"
	helper "educlub_backend/internals/helpers"
)

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

// GET /api/courses — public catalog
func (ctrl *CourseController) List(c *fiber.Ctx) error {
	var courses []courseModel.Course
	err := ctrl.DB.WithContext(c.UserContext()).
		Order("code ASC").
		Find(&courses).Error
	if err != nil {
		log.Printf("[ERROR] GET /api/courses: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if courses == nil {
		courses = []courseModel.Course{}
	}
	return helper.JsonOK(c, fiber.Map{"courses": courses})
}

type courseOverviewRow struct {
	CourseID      int64    `gorm:"column:course_id" json:"course_id"`
	Code          string   `gorm:"column:code" json:"code"`
	Name          string   `gorm:"column:name" json:"name"`
	TutorCount    int64    `gorm:"column:tutor_count" json:"tutor_count"`
	EnrolledCount int64    `gorm:"column:enrolled_count" json:"enrolled_count"`
	SessionCount  int64    `gorm:"column:session_count" json:"session_count"`
	AvgStars      *float64 `gorm:"column:avg_stars" json:"avg_stars"`
}

// GET /api/courses/overview — per-course aggregates
func (ctrl *CourseController) Overview(c *fiber.Ctx) error {
	var rows []courseOverviewRow
	err := ctrl.DB.WithContext(c.UserContext()).Raw(`
		SELECT c.id AS course_id, c.code, c.name,
		       (SELECT COUNT(1) FROM tutor_courses tc WHERE tc.course_id = c.id) AS tutor_count,
		       (SELECT COUNT(1) FROM enrollments e WHERE e.course_id = c.id) AS enrolled_count,
		       (SELECT COUNT(1) FROM tutoring_sessions s WHERE s.course_id = c.id) AS session_count,
		       (SELECT AVG(r.score)::float8
		        FROM ratings r
		        JOIN tutor_courses tc ON tc.tutor_id = r.tutor_id
		        WHERE tc.course_id = c.id) AS avg_stars
		FROM courses c
		ORDER BY c.code ASC`).Scan(&rows).Error
	if err != nil {
		log.Printf("[ERROR] GET /api/courses/overview: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if rows == nil {
		rows = []courseOverviewRow{}
	}
	return helper.JsonOK(c, fiber.Map{"courses": rows})
}

type participantRow struct {
	UserID    int64   `gorm:"column:user_id" json:"user_id"`
	FirstName string  `gorm:"column:first_name" json:"first_name"`
	LastName  string  `gorm:"column:last_name" json:"last_name"`
	AvatarURL *string `gorm:"column:avatar_url" json:"avatar_url"`
	Role      string  `gorm:"column:role" json:"role"`
}

// GET /api/course-participants?course_code=
func (ctrl *CourseController) Participants(c *fiber.Ctx) error {
	code := strings.TrimSpace(c.Query("course_code"))
	if code == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "course_code required")
	}

	var course courseModel.Course
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("code = ?", code).
		First(&course).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		log.Printf("[ERROR] GET /api/course-participants: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []participantRow
	err = ctrl.DB.WithContext(c.UserContext()).Raw(`
		SELECT u.id AS user_id, u.first_name, u.last_name, u.avatar_url, 'tutor'::text AS role
		FROM tutor_courses tc
		JOIN users u ON u.id = tc.tutor_id
		WHERE tc.course_id = ?
		UNION ALL
		SELECT u.id AS user_id, u.first_name, u.last_name, u.avatar_url, 'student'::text AS role
		FROM enrollments e
		JOIN users u ON u.id = e.user_id
		WHERE e.course_id = ?
		ORDER BY role DESC, last_name ASC, first_name ASC`,
		course.ID, course.ID).Scan(&rows).Error
	if err != nil {
		log.Printf("[ERROR] course participants query: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if rows == nil {
		rows = []participantRow{}
	}

	return helper.JsonOK(c, fiber.Map{
		"course":       fiber.Map{"id": course.ID, "code": course.Code, "name": course.Name},
		"participants": rows,
		"as_of":        time.Now().UTC(),
	})
}
