package factory

import (
	"fmt"
	"sync"

	"github.com/NeuralTrust/ContentGuard/pkg/infra/httpx"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers/anthropic"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers/azure"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers/bedrock"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers/gemini"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers/openai"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers/rekognition"
	"golang.org/x/sync/singleflight"
)

//go:generate mockery --name=ProviderLocator --dir=. --output=./mocks --filename=provider_locator_mock.go --case=underscore --with-expecter

type ProviderLocator interface {
	Get(provider string) (providers.Client, error)
}

type providerLocator struct {
	httpClient httpx.Client
	clients    sync.Map
	sf         singleflight.Group
}

func NewProviderLocator(httpClient httpx.Client) ProviderLocator {
	return &providerLocator{
		httpClient: httpClient,
	}
}

// Get returns one shared client per provider name.
func (f *providerLocator) Get(provider string) (providers.Client, error) {
	if v, ok := f.clients.Load(provider); ok {
		if cli, ok := v.(providers.Client); ok {
			return cli, nil
		}
	}
	v, err, _ := f.sf.Do(provider, func() (any, error) {
		if v, ok := f.clients.Load(provider); ok {
			return v, nil
		}
		cli, err := f.build(provider)
		if err != nil {
			return nil, err
		}
		f.clients.Store(provider, cli)
		return cli, nil
	})
	if err != nil {
		return nil, err
	}
	cli, ok := v.(providers.Client)
	if !ok {
		return nil, fmt.Errorf("invalid client type for provider %s", provider)
	}
	return cli, nil
}

func (f *providerLocator) build(provider string) (providers.Client, error) {
	switch provider {
	case providers.ProviderOpenAI:
		return openai.NewOpenaiClient(), nil
	case providers.ProviderAnthropic:
		return anthropic.NewAnthropicClient(), nil
	case providers.ProviderGemini:
		return gemini.NewGeminiClient(), nil
	case providers.ProviderAzure:
		return azure.NewAzureClient(f.httpClient), nil
	case providers.ProviderBedrock:
		return bedrock.NewBedrockClient(), nil
	case providers.ProviderRekognition:
		return rekognition.NewRekognitionClient(), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
