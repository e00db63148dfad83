package response

import "github.com/gofiber/fiber/v2"

const (
	ErrInvalidJsonPayload   = "Invalid request body"
	ErrMissingFilenameType  = "Missing filename or type"
	ErrMissingAuthorization = "Missing authorization header"
)

// Success writes a content decision. Decisions are always 200, blocked or not.
func Success(c *fiber.Ctx, body interface{}) error {
	return c.Status(fiber.StatusOK).JSON(body)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

func Unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"code":    fiber.StatusUnauthorized,
		"message": ErrMissingAuthorization,
	})
}
