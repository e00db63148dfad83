package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

var defaultAllowHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

type corsGlobalMiddleware struct {
	allowOrigin  string
	allowHeaders string
	allowMethods string
}

// NewCORSGlobalMiddleware answers every preflight with 204 and decorates every
// response with permissive CORS headers. Empty arguments fall back to origin
// "*" and the browser client's header set.
func NewCORSGlobalMiddleware(allowOrigin string, allowHeaders, allowMethods []string) Middleware {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	if len(allowHeaders) == 0 {
		allowHeaders = defaultAllowHeaders
	}
	return &corsGlobalMiddleware{
		allowOrigin:  allowOrigin,
		allowHeaders: strings.Join(allowHeaders, ", "),
		allowMethods: strings.Join(allowMethods, ", "),
	}
}

func (m *corsGlobalMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, m.allowOrigin)
		c.Set(fiber.HeaderAccessControlAllowHeaders, m.allowHeaders)
		if m.allowMethods != "" {
			c.Set(fiber.HeaderAccessControlAllowMethods, m.allowMethods)
		}
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}
