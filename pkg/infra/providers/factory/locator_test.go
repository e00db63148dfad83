package factory_test

import (
	"testing"

	"github.com/NeuralTrust/ContentGuard/pkg/infra/httpx/mocks"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderLocator_Get(t *testing.T) {
	locator := factory.NewProviderLocator(new(mocks.MockHTTPClient))

	for _, name := range []string{
		providers.ProviderOpenAI,
		providers.ProviderAnthropic,
		providers.ProviderGemini,
		providers.ProviderAzure,
		providers.ProviderBedrock,
		providers.ProviderRekognition,
	} {
		cli, err := locator.Get(name)
		require.NoError(t, err, name)
		assert.NotNil(t, cli, name)
	}
}

func TestProviderLocator_ReusesClients(t *testing.T) {
	locator := factory.NewProviderLocator(new(mocks.MockHTTPClient))

	first, err := locator.Get(providers.ProviderOpenAI)
	require.NoError(t, err)
	second, err := locator.Get(providers.ProviderOpenAI)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestProviderLocator_Unsupported(t *testing.T) {
	locator := factory.NewProviderLocator(new(mocks.MockHTTPClient))

	_, err := locator.Get("watson")
	assert.ErrorContains(t, err, "unsupported provider: watson")
}
