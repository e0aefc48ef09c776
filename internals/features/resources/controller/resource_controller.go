package controller

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModel "educlub_backend/internals/features/courses/model"
	"educlub_backend/internals/features/resources/dto"
	helper "educlub_backend/internals/helpers"
	"educlub_backend/internals/helpers/oss"
	authmw "educlub_backend/internals/middlewares/auth"
)

var (
	semesterRe = regexp.MustCompile(`^\d{4}-[12]$`)
	unsafeRe   = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

const presignTTL = 10 * time.Minute

type ResourceController struct {
	DB       *gorm.DB
	OSS      *oss.OSSService
	Validate *validator.Validate
}

func NewResourceController(db *gorm.DB) *ResourceController {
	svc, err := oss.NewOSSServiceFromEnv()
	if err != nil {
		log.Printf("[WARNING] OSS storage not configured: %v", err)
	}
	return &ResourceController{DB: db, OSS: svc, Validate: validator.New()}
}

func safeName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	return unsafeRe.ReplaceAllString(name, "_")
}

// POST /api/resources/presign — course material upload slot
func (ctrl *ResourceController) PresignResource(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	if ctrl.OSS == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "File storage is not configured")
	}

	var req dto.PresignResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if !semesterRe.MatchString(req.Semester) {
		return helper.JsonError(c, fiber.StatusBadRequest, "semester must look like 2026-1 or 2026-2")
	}

	var n int64
	err := ctrl.DB.WithContext(c.UserContext()).
		Model(&courseModel.Course{}).
		Where("id = ? AND code = ?", req.CourseID, req.CourseCode).
		Count(&n).Error
	if err != nil {
		log.Printf("[ERROR] resource presign course check: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if n == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "courseId and courseCode do not match a course")
	}

	key := fmt.Sprintf("resources/%s/%s/%d/%s-%s",
		req.Semester, safeName(req.CourseCode), session.UserID, uuid.NewString(), safeName(req.FileName))
	return ctrl.presign(c, key, req.ContentType)
}

// POST /api/uploads/presign — forum image upload slot, images only
func (ctrl *ResourceController) PresignUpload(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	if ctrl.OSS == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "File storage is not configured")
	}

	var req dto.PresignUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctrl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return helper.JsonError(c, fiber.StatusBadRequest, "contentType must be image/*")
	}

	key := fmt.Sprintf("forums/%d/%s/%s-%s",
		session.UserID, time.Now().UTC().Format("2006-01"), uuid.NewString(), safeName(req.FileName))
	return ctrl.presign(c, key, req.ContentType)
}

func (ctrl *ResourceController) presign(c *fiber.Ctx, key, contentType string) error {
	uploadURL, err := ctrl.OSS.SignPutURL(key, contentType, presignTTL)
	if err != nil {
		log.Printf("[ERROR] presign %s: %v", key, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Could not sign upload URL")
	}
	return helper.JsonOK(c, fiber.Map{
		"upload": dto.PresignResponse{
			UploadURL: uploadURL,
			PublicURL: ctrl.OSS.PublicURL(key),
			Key:       key,
		},
	})
}

// POST /api/uploads/avatar — multipart image, re-encoded to 512px webp
func (ctrl *ResourceController) UploadAvatar(c *fiber.Ctx) error {
	session := authmw.CurrentSession(c)

	if ctrl.OSS == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "File storage is not configured")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "file is required")
	}

	prefix := fmt.Sprintf("avatars/%d", session.UserID)
	url, err := ctrl.OSS.UploadAsWebP(c.UserContext(), fh, prefix, 512)
	if err != nil {
		log.Printf("[ERROR] avatar upload for user %d: %v", session.UserID, err)
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	err = ctrl.DB.WithContext(c.UserContext()).
		Table("users").
		Where("id = ?", session.UserID).
		Update("avatar_url", url).Error
	if err != nil {
		log.Printf("[ERROR] persist avatar url: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, fiber.Map{"avatar_url": url})
}
