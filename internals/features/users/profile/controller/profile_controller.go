package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"educlub_backend/internals/constants"
	courseModel "educlub_backend/internals/features/courses/model"
	"educlub_backend/internals/features/users/profile/dto"
	helper "educlub_backend/internals/helpers"
	authmw "educlub_backend/internals/middlewares/auth"
)

type ProfileController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db, Validate: validator.New()}
}

type profileRow struct {
	ID        int64   `gorm:"column:id" json:"id"`
	FirstName string  `gorm:"column:first_name" json:"first_name"`
	LastName  string  `gorm:"column:last_name" json:"last_name"`
	Email     string  `gorm:"column:email" json:"email"`
	Role      string  `gorm:"column:role" json:"role"`
	AvatarURL *string `gorm:"column:avatar_url" json:"avatar_url"`
}

func (ctrl *ProfileController) loadProfile(c *fiber.Ctx, userID int64) (*profileRow, error) {
	var row profileRow
	err := ctrl.DB.WithContext(c.UserContext()).Raw(`
		SELECT u.id, u.first_name, u.last_name, u.email, r.name AS role, u.avatar_url
		FROM users u
		JOIN roles r ON r.id = u.role_id
		WHERE u.id = ?`, userID).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// GET /api/profile
func (ctrl *ProfileController) Get(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	row, err := ctrl.loadProfile(c, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Not found")
		}
		log.Printf("[ERROR] GET /api/profile: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, fiber.Map{"user": row})
}

// PATCH /api/profile
func (ctrl *ProfileController) Update(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}

	err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if req.Role != nil {
			if !constants.IsValidRole(*req.Role) {
				return errors.New("role must be student or tutor")
			}
			var roleID int64
			if err := tx.Raw(`SELECT id FROM roles WHERE name = ?`, *req.Role).Scan(&roleID).Error; err != nil {
				return err
			}
			if roleID == 0 {
				return errors.New("role must be student or tutor")
			}
			updates["role_id"] = roleID
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Table("users").Where("id = ?", session.UserID).Updates(updates).Error
	})
	if err != nil {
		log.Printf("[ERROR] PATCH /api/profile: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	row, err := ctrl.loadProfile(c, session.UserID)
	if err != nil {
		log.Printf("[ERROR] reload profile: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, fiber.Map{"user": row})
}

// GET /api/profile/enrollments
func (ctrl *ProfileController) Enrollments(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)
	return ctrl.listCourses(c, `
		SELECT c.id, c.code, c.name, c.description
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		WHERE e.user_id = ?
		ORDER BY c.code ASC`, session.UserID)
}

// PUT /api/profile/enrollments
func (ctrl *ProfileController) ReplaceEnrollments(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)
	return ctrl.replaceCourseSet(c, "enrollments", "user_id", session.UserID)
}

// GET /api/profile/tutor-courses
func (ctrl *ProfileController) TutorCourses(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)
	return ctrl.listCourses(c, `
		SELECT c.id, c.code, c.name, c.description
		FROM tutor_courses tc
		JOIN courses c ON c.id = tc.course_id
		WHERE tc.tutor_id = ?
		ORDER BY c.code ASC`, session.UserID)
}

// PUT /api/profile/tutor-courses
func (ctrl *ProfileController) ReplaceTutorCourses(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)
	return ctrl.replaceCourseSet(c, "tutor_courses", "tutor_id", session.UserID)
}

func (ctrl *ProfileController) listCourses(c *fiber.Ctx, query string, userID int64) error {
	var courses []courseModel.Course
	if err := ctrl.DB.WithContext(c.UserContext()).Raw(query, userID).Scan(&courses).Error; err != nil {
		log.Printf("[ERROR] list courses for user %d: %v", userID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if courses == nil {
		courses = []courseModel.Course{}
	}
	return helper.JsonOK(c, fiber.Map{"courses": courses})
}

// replaceCourseSet swaps the user's full course membership in one
// transaction. Unknown course ids reject the whole request.
func (ctrl *ProfileController) replaceCourseSet(c *fiber.Ctx, table, ownerCol string, userID int64) error {
	var req dto.ReplaceCoursesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	seen := make(map[int64]struct{}, len(req.CourseIDs))
	ids := make([]int64, 0, len(req.CourseIDs))
	for _, id := range req.CourseIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if len(ids) > 0 {
			var n int64
			err := tx.Raw(`SELECT COUNT(1) FROM courses WHERE id = ANY(?::bigint[])`,
				pq.Array(ids)).Scan(&n).Error
			if err != nil {
				return err
			}
			if n != int64(len(ids)) {
				return errUnknownCourseID
			}
		}
		if err := tx.Exec(`DELETE FROM `+table+` WHERE `+ownerCol+` = ?`, userID).Error; err != nil {
			return err
		}
		for _, id := range ids {
			err := tx.Exec(`INSERT INTO `+table+` (`+ownerCol+`, course_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
				userID, id).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errUnknownCourseID) {
			return helper.JsonError(c, fiber.StatusBadRequest, "course_ids contains an unknown course")
		}
		log.Printf("[ERROR] replace %s: %v", table, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, fiber.Map{"course_ids": ids})
}

var errUnknownCourseID = errors.New("unknown course id")
