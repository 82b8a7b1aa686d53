package server

import (
	"github.com/gofiber/fiber/v2"

	"alertdeck/pkg/models"
)

// SendSuccess writes the uniform success envelope.
func SendSuccess(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(models.APIResponse{
		Status: "success",
		Data:   data,
	})
}

// SendErrorWithType writes the uniform error envelope with a client-facing
// error category.
func SendErrorWithType(c *fiber.Ctx, status int, message string, errorType models.ErrorType) error {
	return c.Status(status).JSON(models.APIResponse{
		Status:    "error",
		Message:   message,
		ErrorType: errorType,
	})
}
