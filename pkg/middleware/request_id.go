package middleware

import (
	"context"
	"time"

	"github.com/NeuralTrust/ContentGuard/pkg/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type requestIDMiddleware struct{}

func NewRequestIDMiddleware() Middleware {
	return &requestIDMiddleware{}
}

// Middleware keeps a caller supplied request id or mints one, and stamps the
// request start time.
func (m *requestIDMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(common.RequestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.New().String()
		}
		start := time.Now()

		c.Locals(common.RequestIDContextKey, requestID)
		c.Locals(common.StartTimeContextKey, start)
		ctx := context.WithValue(c.UserContext(), common.RequestIDContextKey, requestID)
		ctx = context.WithValue(ctx, common.StartTimeContextKey, start)
		c.SetUserContext(ctx)
		c.Set(common.RequestIDHeader, requestID)

		return c.Next()
	}
}
