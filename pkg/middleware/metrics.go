package middleware

import (
	"errors"
	"strconv"

	"github.com/NeuralTrust/ContentGuard/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
)

type metricsMiddleware struct {
	enabled bool
}

func NewMetricsMiddleware(enabled bool) Middleware {
	return &metricsMiddleware{enabled: enabled}
}

// Middleware counts requests by route pattern, never by raw path.
func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if !m.enabled {
			return err
		}

		code := c.Response().StatusCode()
		if err != nil {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			} else {
				code = fiber.StatusInternalServerError
			}
		}
		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}
		prometheus.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
		return err
	}
}
