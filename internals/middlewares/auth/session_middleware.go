package auth

import (
	"log"
	"regexp"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"educlub_backend/internals/configs"
	helper "educlub_backend/internals/helpers"
)

// Session is the resolved identity behind the sid cookie.
type Session struct {
	Token           string    `json:"token"`
	UserID          int64     `json:"userId"`
	UserName        string    `json:"userName"`
	UserEmail       string    `json:"userEmail"`
	UserRole        string    `json:"userRole"`
	ExpiresAt       time.Time `json:"expires_at,omitempty"`
	IsAuthenticated bool      `json:"isAuthenticated"`
}

// RFC4122 v1..v5; anything else never reaches the DB
var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

type sessionRow struct {
	UserID    int64     `gorm:"column:user_id"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	Email     string    `gorm:"column:email"`
	Role      string    `gorm:"column:role"`
	ExpiresAt time.Time `gorm:"column:expires_at"`
}

// ResolveSession validates the opaque session token against auth_sessions.
// Returns a zero Session (IsAuthenticated=false) for missing/invalid cookies.
func ResolveSession(db *gorm.DB, c *fiber.Ctx) Session {
	token := c.Cookies(configs.SessionCookieName)
	if token == "" || !uuidRe.MatchString(token) {
		return Session{}
	}

	var row sessionRow
	err := db.WithContext(c.UserContext()).Raw(`
		SELECT s.user_id,
		       u.first_name,
		       u.last_name,
		       u.email,
		       r.name AS role,
		       s.expires_at
		FROM auth_sessions s
		JOIN users u ON u.id = s.user_id
		JOIN roles r ON r.id = u.role_id
		WHERE s.id = ?::uuid
		  AND s.revoked_at IS NULL
		  AND s.expires_at > now()
		LIMIT 1`, token).Scan(&row).Error
	if err != nil {
		log.Printf("[ERROR] session lookup: %v", err)
		return Session{}
	}
	if row.UserID == 0 {
		return Session{}
	}

	name := row.FirstName
	if row.LastName != "" {
		name = row.FirstName + " " + row.LastName
	}
	return Session{
		Token:           token,
		UserID:          row.UserID,
		UserName:        name,
		UserEmail:       row.Email,
		UserRole:        row.Role,
		ExpiresAt:       row.ExpiresAt,
		IsAuthenticated: true,
	}
}

// SessionAuth rejects unauthenticated requests with 401 before any handler runs.
func SessionAuth(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := ResolveSession(db, c)
		if !s.IsAuthenticated {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Not authenticated")
		}
		c.Locals("session", s)
		c.Locals("user_id", s.UserID)
		c.Locals("user_role", s.UserRole)
		return c.Next()
	}
}

// CurrentSession reads the session stored by SessionAuth.
func CurrentSession(c *fiber.Ctx) Session {
	if s, ok := c.Locals("session").(Session); ok {
		return s
	}
	return Session{}
}
