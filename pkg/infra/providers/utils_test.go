package providers_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/NeuralTrust/ContentGuard/pkg/common"
	"github.com/NeuralTrust/ContentGuard/pkg/domain/moderation"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	img, err := providers.DecodeDataURI("data:image/png;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.MediaType)
	assert.Equal(t, payload, img.Base64)
	assert.Equal(t, []byte("png-bytes"), img.Data)
}

func TestDecodeDataURI_Invalid(t *testing.T) {
	cases := []string{
		"",
		"https://example.com/a.png",
		"data:image/png;base64,",
		"data:image/png,plain",
		"data:image/png;base64,***",
	}
	for _, c := range cases {
		_, err := providers.DecodeDataURI(c)
		assert.True(t, errors.Is(err, moderation.ErrInvalidImageData), "input %q", c)
	}
}

func TestTrimCodeFence(t *testing.T) {
	assert.Equal(t, `{"status":"passed"}`, providers.TrimCodeFence("```json\n{\"status\":\"passed\"}\n```"))
	assert.Equal(t, `{"status":"passed"}`, providers.TrimCodeFence("```\n{\"status\":\"passed\"}\n```"))
	assert.Equal(t, `{"a":1}`, providers.TrimCodeFence("  {\"a\":1}  "))
	assert.Equal(t, "not json", providers.TrimCodeFence("not json"))
}

func TestHasCredential(t *testing.T) {
	assert.False(t, providers.Credentials{}.HasCredential(providers.ProviderOpenAI))
	assert.True(t, providers.Credentials{ApiKey: "k"}.HasCredential(providers.ProviderOpenAI))
	assert.False(t, providers.Credentials{ApiKey: "k"}.HasCredential(providers.ProviderAzure))
	assert.True(t, providers.Credentials{
		Azure: &providers.AzureCredentials{Endpoint: "https://x.openai.azure.com", UseIdentity: true},
	}.HasCredential(providers.ProviderAzure))
	assert.True(t, providers.Credentials{
		Aws: &providers.AwsCredentials{Region: "us-east-1"},
	}.HasCredential(providers.ProviderBedrock))
	assert.False(t, providers.Credentials{
		Aws: &providers.AwsCredentials{Region: "us-east-1", UseRole: true},
	}.HasCredential(providers.ProviderRekognition))
	assert.False(t, providers.Credentials{ApiKey: "k"}.HasCredential("unknown"))
}

func TestJudgmentID(t *testing.T) {
	ctx := context.WithValue(context.Background(), common.RequestIDContextKey, "abc")
	assert.Equal(t, "openai-abc", providers.JudgmentID(ctx, "openai"))
	assert.True(t, strings.HasPrefix(providers.JudgmentID(context.Background(), "gemini"), "gemini-"))
}

func TestUpstreamErrorKeepsCause(t *testing.T) {
	err := providers.UpstreamError(providers.ProviderOpenAI, context.Canceled)

	assert.ErrorIs(t, err, moderation.ErrUpstream)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "openai")
}
