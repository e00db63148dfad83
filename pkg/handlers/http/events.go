package http

import (
	"time"

	"github.com/NeuralTrust/ContentGuard/pkg/common"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/metrics/metric_events"
	"github.com/NeuralTrust/ContentGuard/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

// requestStart returns the time stamped by the request id middleware.
func requestStart(c *fiber.Ctx) time.Time {
	if start, ok := c.Locals(common.StartTimeContextKey).(time.Time); ok {
		return start
	}
	return time.Now()
}

// feedEvent copies caller metadata onto evt. Request bodies are never copied.
func feedEvent(c *fiber.Ctx, evt *metric_events.Event) *metric_events.Event {
	if requestID, ok := c.Locals(common.RequestIDContextKey).(string); ok {
		evt.RequestID = requestID
	}
	if subject, ok := c.Locals(common.SubjectContextKey).(string); ok {
		evt.Subject = subject
	}
	evt.IP = c.IP()
	if ua := utils.ParseUserAgent(c.Get(fiber.HeaderUserAgent), c.Get(fiber.HeaderAcceptLanguage)); ua != nil {
		evt.Device = ua.Device
		evt.Os = ua.OS
		evt.Browser = ua.Browser
		evt.Locale = ua.Locale
	}
	return evt
}
