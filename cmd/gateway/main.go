package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/NeuralTrust/ContentGuard/pkg/config"
	"github.com/NeuralTrust/ContentGuard/pkg/dependency_container"
	infraLogger "github.com/NeuralTrust/ContentGuard/pkg/infra/logger"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/prometheus"
	"github.com/NeuralTrust/ContentGuard/pkg/server"
	"github.com/NeuralTrust/ContentGuard/pkg/version"
	"github.com/joho/godotenv"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, closeLogger, err := infraLogger.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer closeLogger()

	if cfg.Metrics.Enabled {
		prometheus.Initialize()
	}

	swaggerFile := os.Getenv("SWAGGER_FILE")
	if swaggerFile == "" {
		swaggerFile = "./docs/swagger.json"
	}
	container, err := dependency_container.NewContainer(dependency_container.ContainerDI{
		Cfg:         cfg,
		Logger:      logger,
		SwaggerFile: swaggerFile,
	})
	if err != nil {
		logger.Fatalf("failed to initialize dependencies: %v", err)
	}

	workers := cfg.Metrics.Workers
	if workers <= 0 {
		workers = 1
	}
	container.MetricsWorker.StartWorkers(workers)

	if !cfg.ModerationProvider().Credentials.HasCredential(cfg.Moderation.Provider) {
		logger.WithField("provider", cfg.Moderation.Provider).
			Warn("moderation credential is not configured, every decision will fail closed")
	}

	srv := server.NewGatewayServer(server.GatewayServerDI{
		Config:  cfg,
		Logger:  logger,
		Routers: container.Routers,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	}()
	logger.WithField("version", version.Version).Info("content guard started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("error shutting down server")
	}
	container.MetricsWorker.Shutdown()
	logger.Info("server gracefully stopped")
}
