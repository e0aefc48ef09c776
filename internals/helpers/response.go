package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// JsonOK merges ok:true into the payload (default 200)
func JsonOK(c *fiber.Ctx, data fiber.Map) error {
	return JsonOKWithCode(c, fiber.StatusOK, data)
}

func JsonOKWithCode(c *fiber.Ctx, code int, data fiber.Map) error {
	body := fiber.Map{"ok": true}
	for k, v := range data {
		body[k] = v
	}
	return c.Status(code).JSON(body)
}

func JsonCreated(c *fiber.Ctx, data fiber.Map) error {
	return JsonOKWithCode(c, fiber.StatusCreated, data)
}

func JsonError(c *fiber.Ctx, code int, message string) error {
	if message == "" {
		message = "Internal error"
	}
	return c.Status(code).JSON(fiber.Map{
		"ok":    false,
		"error": message,
	})
}

// JsonErrorWithHint adds an actionable hint next to the error message
func JsonErrorWithHint(c *fiber.Ctx, code int, message, hint string) error {
	return c.Status(code).JSON(fiber.Map{
		"ok":    false,
		"error": message,
		"hint":  hint,
	})
}

// ValidationError maps validator.v10 field errors into a 400 response
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}

	errorsMap := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"ok":     false,
		"error":  "Validation failed",
		"fields": errorsMap,
	})
}
