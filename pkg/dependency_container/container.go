package dependency_container

import (
	"fmt"

	"github.com/NeuralTrust/ContentGuard/pkg/app/analysis"
	"github.com/NeuralTrust/ContentGuard/pkg/app/moderation"
	"github.com/NeuralTrust/ContentGuard/pkg/app/telemetry"
	"github.com/NeuralTrust/ContentGuard/pkg/config"
	handlers "github.com/NeuralTrust/ContentGuard/pkg/handlers/http"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/httpx"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/metrics"
	providersFactory "github.com/NeuralTrust/ContentGuard/pkg/infra/providers/factory"
	infraTelemetry "github.com/NeuralTrust/ContentGuard/pkg/infra/telemetry"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/telemetry/kafka"
	"github.com/NeuralTrust/ContentGuard/pkg/middleware"
	"github.com/NeuralTrust/ContentGuard/pkg/server/router"
	"github.com/NeuralTrust/ContentGuard/pkg/version"
	"github.com/sirupsen/logrus"
)

const breakerName = "moderation-judgment"

type Container struct {
	HandlerTransport         handlers.HandlerTransport
	MiddlewareTransport      *middleware.Transport
	MetricsWorker            metrics.Worker
	ModerationAnalyzer       moderation.Analyzer
	AnalysisAnalyzer         analysis.Analyzer
	TelemetryExporterLocator *infraTelemetry.ExporterLocator
	TelemetryValidator       telemetry.ExportersValidator
	Routers                  []router.ServerRouter
}

type ContainerDI struct {
	Cfg         *config.Config
	Logger      *logrus.Logger
	SwaggerFile string
}

func NewContainer(di ContainerDI) (*Container, error) {
	cfg := di.Cfg

	httpClient := httpx.NewFastHTTPClient(
		httpx.WithUserAgent(version.GetInfo().UserAgent()),
	)
	providerLocator := providersFactory.NewProviderLocator(httpClient)

	var breaker httpx.CircuitBreaker
	if cfg.Moderation.Breaker.Enabled {
		breaker = httpx.NewCircuitBreaker(
			breakerName,
			cfg.Moderation.Breaker.Timeout,
			cfg.Moderation.Breaker.MaxFailures,
			httpx.WithFailureFilter(moderation.CountsAsJudgmentFailure),
		)
	}

	moderationSettings := moderation.Settings{
		Provider:       cfg.Moderation.Provider,
		ProviderConfig: cfg.ModerationProvider(),
		Timeout:        cfg.Moderation.Timeout,
	}
	moderationAnalyzer := moderation.NewAnalyzer(di.Logger, providerLocator, breaker, moderationSettings)

	analysisAnalyzer := analysis.NewAnalyzer(di.Logger, providerLocator, analysis.Settings{
		Provider:       cfg.Analysis.Provider,
		ProviderConfig: cfg.AnalysisProvider(),
		Timeout:        cfg.Analysis.Timeout,
	})

	// telemetry
	exporterLocator := infraTelemetry.NewExporterLocator(
		infraTelemetry.WithExporter(kafka.ExporterName, kafka.NewKafkaExporter()),
	)
	telemetryValidator := telemetry.NewTelemetryExportersValidator(exporterLocator)
	if err := telemetryValidator.Validate(cfg.Telemetry.Exporters); err != nil {
		return nil, fmt.Errorf("invalid telemetry configuration: %w", err)
	}
	exporters, err := telemetry.NewTelemetryExportersBuilder(exporterLocator).Build(cfg.Telemetry.Exporters)
	if err != nil {
		return nil, fmt.Errorf("failed to build telemetry exporters: %w", err)
	}

	metricsWorker := metrics.NewWorker(
		di.Logger,
		exporters,
		metrics.WithQueueSize(cfg.Metrics.QueueSize),
		metrics.WithPrometheus(cfg.Metrics.Enabled),
	)

	middlewareTransport := &middleware.Transport{
		RequestIDMiddleware:    middleware.NewRequestIDMiddleware(),
		MetricsMiddleware:      middleware.NewMetricsMiddleware(cfg.Metrics.Enabled),
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(di.Logger),
		CORSMiddleware:         middleware.NewCORSGlobalMiddleware("", nil, nil),
		AuthMiddleware:         middleware.NewAuthMiddleware(di.Logger, cfg.Server.TrustedHosts),
	}

	configured := func() bool {
		return moderationSettings.ProviderConfig.Credentials.HasCredential(moderationSettings.Provider)
	}
	handlerTransport := handlers.HandlerTransport{
		ModerateHandler:   handlers.NewModerateHandler(di.Logger, moderationAnalyzer, metricsWorker),
		AnalyzeHandler:    handlers.NewAnalyzeHandler(di.Logger, analysisAnalyzer, metricsWorker),
		GetVersionHandler: handlers.NewGetVersionHandler(di.Logger),
		HealthHandler:     handlers.NewHealthHandler(configured),
	}

	return &Container{
		HandlerTransport:         handlerTransport,
		MiddlewareTransport:      middlewareTransport,
		MetricsWorker:            metricsWorker,
		ModerationAnalyzer:       moderationAnalyzer,
		AnalysisAnalyzer:         analysisAnalyzer,
		TelemetryExporterLocator: exporterLocator,
		TelemetryValidator:       telemetryValidator,
		Routers: []router.ServerRouter{
			router.NewGatewayRouter(middlewareTransport, handlerTransport, di.SwaggerFile),
		},
	}, nil
}
