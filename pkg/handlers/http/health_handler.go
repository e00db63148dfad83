package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type healthHandler struct {
	configured func() bool
}

// NewHealthHandler reports whether the moderation credential is present. A
// missing credential is not unhealthy: requests still fail closed.
func NewHealthHandler(configured func() bool) Handler {
	return &healthHandler{configured: configured}
}

func (h *healthHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":     "healthy",
		"configured": h.configured(),
		"time":       time.Now().Format(time.RFC3339),
	})
}
