package middleware

import (
	"strings"

	"github.com/NeuralTrust/ContentGuard/pkg/app/moderation"
	"github.com/NeuralTrust/ContentGuard/pkg/common"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type panicRecoverMiddleware struct {
	logger *logrus.Logger
}

func NewPanicRecoverMiddleware(logger *logrus.Logger) Middleware {
	return &panicRecoverMiddleware{logger: logger}
}

// Middleware turns a panic into a response. On the moderation route that
// response is the blocking system error decision with status 200.
func (m *panicRecoverMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.WithFields(logrus.Fields{
					"error":      r,
					"path":       c.Path(),
					"request_id": c.Locals(common.RequestIDContextKey),
				}).Error("HTTP server panic recovered")

				c.Response().ResetBody()
				if strings.TrimSuffix(c.Path(), "/") == common.ModeratePath {
					err = c.Status(fiber.StatusOK).JSON(moderation.SystemErrorResult())
					return
				}
				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Internal server error",
				})
			}
		}()

		return c.Next()
	}
}
