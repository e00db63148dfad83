package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

// Transport groups the middlewares the gateway router installs.
type Transport struct {
	RequestIDMiddleware    Middleware
	MetricsMiddleware      Middleware
	PanicRecoverMiddleware Middleware
	CORSMiddleware         Middleware
	AuthMiddleware         Middleware
}
