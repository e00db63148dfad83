package config

import (
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
)

type VendorConfig struct {
	ApiKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

type AzureConfig struct {
	ApiKey             string `mapstructure:"api_key"`
	Endpoint           string `mapstructure:"endpoint"`
	ApiVersion         string `mapstructure:"api_version"`
	UseManagedIdentity bool   `mapstructure:"use_managed_identity"`
}

type AwsConfig struct {
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	SessionToken string `mapstructure:"session_token"`
	Region       string `mapstructure:"region"`
	UseRole      bool   `mapstructure:"use_role"`
	RoleARN      string `mapstructure:"role_arn"`
}

// ProvidersConfig holds the credential material for every upstream vendor.
type ProvidersConfig struct {
	OpenAI    VendorConfig `mapstructure:"openai"`
	Anthropic VendorConfig `mapstructure:"anthropic"`
	Gemini    VendorConfig `mapstructure:"gemini"`
	Azure     AzureConfig  `mapstructure:"azure"`
	Aws       AwsConfig    `mapstructure:"aws"`
}

// ProviderConfig resolves the call settings for one vendor. Credentials are
// injected here once, never read from the environment at call time.
func (p ProvidersConfig) ProviderConfig(provider, model string, maxTokens int, temperature float64) providers.Config {
	cfg := providers.Config{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
	switch provider {
	case providers.ProviderOpenAI:
		cfg.Credentials.ApiKey = p.OpenAI.ApiKey
		cfg.BaseURL = p.OpenAI.BaseURL
	case providers.ProviderAnthropic:
		cfg.Credentials.ApiKey = p.Anthropic.ApiKey
		cfg.BaseURL = p.Anthropic.BaseURL
	case providers.ProviderGemini:
		cfg.Credentials.ApiKey = p.Gemini.ApiKey
		cfg.BaseURL = p.Gemini.BaseURL
	case providers.ProviderAzure:
		cfg.Credentials.ApiKey = p.Azure.ApiKey
		cfg.Credentials.Azure = &providers.AzureCredentials{
			Endpoint:    p.Azure.Endpoint,
			ApiVersion:  p.Azure.ApiVersion,
			UseIdentity: p.Azure.UseManagedIdentity,
		}
	case providers.ProviderBedrock, providers.ProviderRekognition:
		cfg.Credentials.Aws = &providers.AwsCredentials{
			AccessKey:    p.Aws.AccessKey,
			SecretKey:    p.Aws.SecretKey,
			SessionToken: p.Aws.SessionToken,
			Region:       p.Aws.Region,
			UseRole:      p.Aws.UseRole,
			RoleARN:      p.Aws.RoleARN,
		}
	}
	return cfg
}

func (c *Config) ModerationProvider() providers.Config {
	m := c.Moderation
	return c.Providers.ProviderConfig(m.Provider, m.Model, m.MaxTokens, m.Temperature)
}

func (c *Config) AnalysisProvider() providers.Config {
	a := c.Analysis
	return c.Providers.ProviderConfig(a.Provider, a.Model, a.MaxTokens, a.Temperature)
}
