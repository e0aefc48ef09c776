package controller

import (
	"log"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"educlub_backend/internals/constants"
	helper "educlub_backend/internals/helpers"
)

const lookupCap = 50

type DirectoryController struct {
	DB *gorm.DB
}

func NewDirectoryController(db *gorm.DB) *DirectoryController {
	return &DirectoryController{DB: db}
}

type lookupRow struct {
	ID        int64  `gorm:"column:id" json:"id"`
	FirstName string `gorm:"column:first_name" json:"first_name"`
	LastName  string `gorm:"column:last_name" json:"last_name"`
	Email     string `gorm:"column:email" json:"email"`
}

// GET /api/users/lookup?ids=1,2,3 — resolve ids to names for UI labels.
func (ctrl *DirectoryController) Lookup(c *fiber.Ctx) error {
	parts := strings.Split(c.Query("ids"), ",")
	ids := make([]int64, 0, len(parts))
	seen := make(map[int64]struct{}, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		if len(ids) == lookupCap {
			break
		}
	}
	if len(ids) == 0 {
		return helper.JsonOK(c, fiber.Map{"users": []lookupRow{}})
	}

	var rows []lookupRow
	err := ctrl.DB.WithContext(c.UserContext()).Raw(`
		SELECT id, first_name, last_name, email
		FROM users
		WHERE id = ANY(?::bigint[])`, pq.Array(ids)).Scan(&rows).Error
	if err != nil {
		log.Printf("[ERROR] GET /api/users/lookup: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if rows == nil {
		rows = []lookupRow{}
	}
	return helper.JsonOK(c, fiber.Map{"users": rows})
}

type listRow struct {
	ID          int64    `gorm:"column:id"`
	FirstName   string   `gorm:"column:first_name"`
	LastName    string   `gorm:"column:last_name"`
	Role        string   `gorm:"column:role"`
	AvatarURL   *string  `gorm:"column:avatar_url"`
	CoursesJSON []byte   `gorm:"column:courses_json"`
	AvgStars    *float64 `gorm:"column:avg_stars"`
	TotalStars  int64    `gorm:"column:total_stars"`
}

type listCourse struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// GET /api/users/list?role=tutor|student|all — directory with course sets and
// rating aggregates.
func (ctrl *DirectoryController) List(c *fiber.Ctx) error {
	role := c.Query("role", "all")
	if role != "all" && !constants.IsValidRole(role) {
		return helper.JsonError(c, fiber.StatusBadRequest, "role must be tutor, student or all")
	}

	query := `
		SELECT u.id, u.first_name, u.last_name, r.name AS role, u.avatar_url,
		       COALESCE((
		           SELECT json_agg(json_build_object('id', c.id, 'code', c.code, 'name', c.name) ORDER BY c.code)
		           FROM tutor_courses tc JOIN courses c ON c.id = tc.course_id
		           WHERE tc.tutor_id = u.id AND r.name = 'tutor'
		       ), (
		           SELECT json_agg(json_build_object('id', c.id, 'code', c.code, 'name', c.name) ORDER BY c.code)
		           FROM enrollments e JOIN courses c ON c.id = e.course_id
		           WHERE e.user_id = u.id
		       ), '[]'::json)::text AS courses_json,
		       (SELECT AVG(score)::float8 FROM ratings WHERE tutor_id = u.id) AS avg_stars,
		       (SELECT COUNT(1) FROM ratings WHERE tutor_id = u.id) AS total_stars
		FROM users u
		JOIN roles r ON r.id = u.role_id`
	args := []interface{}{}
	if role != "all" {
		query += ` WHERE r.name = ?`
		args = append(args, role)
	}
	query += ` ORDER BY u.last_name ASC, u.first_name ASC LIMIT 500`

	var rows []listRow
	if err := ctrl.DB.WithContext(c.UserContext()).Raw(query, args...).Scan(&rows).Error; err != nil {
		log.Printf("[ERROR] GET /api/users/list: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	users := make([]fiber.Map, 0, len(rows))
	for _, row := range rows {
		courses := []listCourse{}
		if len(row.CoursesJSON) > 0 {
			if err := sonic.Unmarshal(row.CoursesJSON, &courses); err != nil {
				log.Printf("[WARNING] user %d courses payload: %v", row.ID, err)
			}
		}
		users = append(users, fiber.Map{
			"id":          row.ID,
			"first_name":  row.FirstName,
			"last_name":   row.LastName,
			"role":        row.Role,
			"avatar_url":  row.AvatarURL,
			"courses":     courses,
			"avg_stars":   row.AvgStars,
			"total_stars": row.TotalStars,
		})
	}
	return helper.JsonOK(c, fiber.Map{"users": users})
}
