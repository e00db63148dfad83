package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/ContentGuard/pkg/domain/telemetry"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	Providers  ProvidersConfig  `mapstructure:"providers"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	MetricsPort     int           `mapstructure:"metrics_port"`
	BodyLimit       int           `mapstructure:"body_limit"`
	TrustedHosts    []string      `mapstructure:"trusted_hosts"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type BreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxFailures uint32        `mapstructure:"max_failures"`
}

type ModerationConfig struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Breaker     BreakerConfig `mapstructure:"breaker"`
}

type AnalysisConfig struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type MetricsConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	Workers   int  `mapstructure:"workers"`
	QueueSize int  `mapstructure:"queue_size"`
}

type TelemetryConfig struct {
	Exporters []telemetry.ExporterConfig `mapstructure:"exporters"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

// envBindings maps config keys onto the conventional vendor variables.
var envBindings = map[string]string{
	"providers.openai.api_key":    "OPENAI_API_KEY",
	"providers.anthropic.api_key": "ANTHROPIC_API_KEY",
	"providers.gemini.api_key":    "GOOGLE_API_KEY",
	"providers.azure.api_key":     "AZURE_OPENAI_API_KEY",
	"providers.azure.endpoint":    "AZURE_OPENAI_ENDPOINT",
	"providers.aws.region":        "AWS_REGION",
	"logging.level":               "LOG_LEVEL",
}

// Load reads config.yaml from configPath (then ./config and .) and overlays
// the environment. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}
	setDefaultValues(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("server.port", 54321)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.body_limit", 12*1024*1024)
	v.SetDefault("server.trusted_hosts", []string{})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("moderation.provider", "openai")
	v.SetDefault("moderation.model", "gpt-4o")
	v.SetDefault("moderation.max_tokens", 800)
	v.SetDefault("moderation.temperature", 0.1)
	v.SetDefault("moderation.timeout", 0)
	v.SetDefault("moderation.breaker.enabled", true)
	v.SetDefault("moderation.breaker.timeout", 30*time.Second)
	v.SetDefault("moderation.breaker.max_failures", 5)

	v.SetDefault("analysis.provider", "openai")
	v.SetDefault("analysis.model", "gpt-4o-mini")
	v.SetDefault("analysis.max_tokens", 500)
	v.SetDefault("analysis.temperature", 0.3)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.workers", 4)
	v.SetDefault("metrics.queue_size", 1000)

	v.SetDefault("logging.level", "info")
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Moderation.MaxTokens <= 0 {
		return fmt.Errorf("invalid moderation max_tokens: %d", c.Moderation.MaxTokens)
	}
	if c.Moderation.Temperature < 0 || c.Moderation.Temperature > 2 {
		return fmt.Errorf("invalid moderation temperature: %v", c.Moderation.Temperature)
	}
	for _, exporter := range c.Telemetry.Exporters {
		if exporter.Name == "" {
			return errors.New("telemetry exporter name is required")
		}
	}
	return nil
}
