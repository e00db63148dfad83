package providers

import (
	"context"
)

const (
	ProviderOpenAI      = "openai"
	ProviderAnthropic   = "anthropic"
	ProviderGemini      = "gemini"
	ProviderAzure       = "azure"
	ProviderBedrock     = "bedrock"
	ProviderRekognition = "rekognition"
)

type Config struct {
	Credentials Credentials `json:"credentials"`
	Model       string      `json:"model"`
	BaseURL     string      `json:"base_url,omitempty"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
	Temperature float64     `json:"temperature,omitempty"`
}

type Credentials struct {
	ApiKey string            `json:"api_key,omitempty"`
	Azure  *AzureCredentials `json:"azure,omitempty"`
	Aws    *AwsCredentials   `json:"aws,omitempty"`
}

type AzureCredentials struct {
	Endpoint    string `json:"endpoint"`
	ApiVersion  string `json:"api_version,omitempty"`
	UseIdentity bool   `json:"use_managed_identity,omitempty"`
}

type AwsCredentials struct {
	AccessKey    string `json:"access_key,omitempty"`
	SecretKey    string `json:"secret_key,omitempty"`
	SessionToken string `json:"session_token,omitempty"`
	Region       string `json:"region"`
	UseRole      bool   `json:"use_role,omitempty"`
	RoleARN      string `json:"role_arn,omitempty"`
}

// HasCredential reports whether enough credential material is configured
// for the given provider to attempt a call.
func (c Credentials) HasCredential(provider string) bool {
	switch provider {
	case ProviderOpenAI, ProviderAnthropic, ProviderGemini:
		return c.ApiKey != ""
	case ProviderAzure:
		if c.Azure == nil || c.Azure.Endpoint == "" {
			return false
		}
		return c.Azure.UseIdentity || c.ApiKey != ""
	case ProviderBedrock, ProviderRekognition:
		if c.Aws == nil || c.Aws.Region == "" {
			return false
		}
		if c.Aws.UseRole && c.Aws.RoleARN == "" {
			return false
		}
		return true
	}
	return false
}

// Prompt is the input of a judgment call. ImageDataURI is optional.
type Prompt struct {
	System       string
	User         string
	ImageDataURI string
}

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter

// Client sends a prompt to an upstream model and returns its raw text.
// Failures are returned as errors and never retried.
type Client interface {
	Judge(ctx context.Context, config *Config, prompt Prompt) (*Judgment, error)
}
