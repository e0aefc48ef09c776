package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"educlub_backend/internals/configs"
	"educlub_backend/internals/features/users/auth/dto"
	authModel "educlub_backend/internals/features/users/auth/model"
	"educlub_backend/internals/features/users/auth/service"
	helper "educlub_backend/internals/helpers"
	authmw "educlub_backend/internals/middlewares/auth"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validate: validator.New()}
}

// POST /api/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := service.RegisterUser(ctrl.DB, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already exists")
		}
		log.Printf("[ERROR] register: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal error")
	}

	return helper.JsonOK(c, fiber.Map{"user": dto.UserView{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      req.Role,
	}})
}

// POST /api/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if req.Email == "" || req.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email and password required")
	}

	user, role, err := service.CheckCredentials(ctrl.DB, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		log.Printf("[ERROR] login: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal error")
	}

	ttl := configs.SessionTTL
	if req.Remember {
		ttl = configs.SessionTTLRemember
	}
	return ctrl.openSession(c, user.ID, role, user, ttl)
}

// POST /api/auth/google
func (ctrl *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	profile, err := service.VerifyGoogleIDToken(req.IDToken)
	if err != nil {
		log.Printf("[ERROR] google token verify: %v", err)
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google token")
	}

	user, role, err := service.FindOrCreateGoogleUser(ctrl.DB, profile)
	if err != nil {
		log.Printf("[ERROR] google sign-in: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal error")
	}
	return ctrl.openSession(c, user.ID, role, user, configs.SessionTTL)
}

// POST /api/logout
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(configs.SessionCookieName); token != "" {
		service.RevokeSession(ctrl.DB, token)
	}
	clearCookie(c)
	return helper.JsonOK(c, fiber.Map{})
}

// GET /api/auth/session — 200 even when anonymous
func (ctrl *AuthController) SessionInfo(c *fiber.Ctx) error {
	s := authmw.ResolveSession(ctrl.DB, c)
	return c.JSON(s)
}

func (ctrl *AuthController) openSession(c *fiber.Ctx, userID int64, role string, user *authModel.User, ttl time.Duration) error {
	ua := c.Get("User-Agent")
	if ua == "" {
		ua = "unknown"
	}
	s, err := service.IssueSession(ctrl.DB, userID, clientIP(c), ua, ttl)
	if err != nil {
		log.Printf("[ERROR] issue session: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal error")
	}

	maxAge := int(time.Until(s.ExpiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.Cookie(&fiber.Cookie{
		Name:     configs.SessionCookieName,
		Value:    s.ID.String(),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		MaxAge:   maxAge,
		Path:     "/",
	})

	return helper.JsonOK(c, fiber.Map{
		"user": dto.UserView{
			ID:        user.ID,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Role:      role,
		},
		"expires_at": s.ExpiresAt,
	})
}

func clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     configs.SessionCookieName,
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		MaxAge:   -1,
		Path:     "/",
	})
}

func clientIP(c *fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "0.0.0.0"
}
