package router

import (
	"errors"

	"github.com/NeuralTrust/ContentGuard/pkg/common"
	handlers "github.com/NeuralTrust/ContentGuard/pkg/handlers/http"
	"github.com/NeuralTrust/ContentGuard/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

const (
	HealthPath  = "/health"
	VersionPath = "/version"
	SwaggerPath = "/swagger.json"
	DocsPath    = "/docs/*"
)

var ErrInvalidHandlerTransport = errors.New("invalid handler transport")

type gatewayRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
	swaggerFile         string
}

func NewGatewayRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
	swaggerFile string,
) ServerRouter {
	return &gatewayRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
		swaggerFile:         swaggerFile,
	}
}

func (r *gatewayRouter) BuildRoutes(router *fiber.App) error {
	h := r.handlerTransport
	if h.ModerateHandler == nil || h.AnalyzeHandler == nil {
		return ErrInvalidHandlerTransport
	}
	m := r.middlewareTransport

	// Order matters: metrics observe recovered panics and CORS preflights
	// short-circuit before authentication.
	router.Use(
		m.RequestIDMiddleware.Middleware(),
		m.MetricsMiddleware.Middleware(),
		m.CORSMiddleware.Middleware(),
		m.PanicRecoverMiddleware.Middleware(),
	)

	if h.HealthHandler != nil {
		router.Get(HealthPath, h.HealthHandler.Handle)
	}
	if h.GetVersionHandler != nil {
		router.Get(VersionPath, h.GetVersionHandler.Handle)
	}
	if r.swaggerFile != "" {
		router.Static(SwaggerPath, r.swaggerFile)
		router.Get(DocsPath, swagger.New(swagger.Config{URL: SwaggerPath}))
	}

	auth := m.AuthMiddleware.Middleware()
	router.Post(common.ModeratePath, auth, h.ModerateHandler.Handle)
	router.Post(common.AnalyzePath, auth, h.AnalyzeHandler.Handle)

	return nil
}
