package analysis_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/NeuralTrust/ContentGuard/pkg/app/analysis"
	domain "github.com/NeuralTrust/ContentGuard/pkg/domain/analysis"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
	factorymocks "github.com/NeuralTrust/ContentGuard/pkg/infra/providers/factory/mocks"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAnalyzer(apiKey string) (analysis.Analyzer, *factorymocks.ProviderLocator, *mocks.Client) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	locator := new(factorymocks.ProviderLocator)
	client := new(mocks.Client)
	locator.On("Get", providers.ProviderOpenAI).Return(client, nil).Maybe()
	settings := analysis.Settings{
		Provider: providers.ProviderOpenAI,
		ProviderConfig: providers.Config{
			Credentials: providers.Credentials{ApiKey: apiKey},
			Model:       "gpt-4o-mini",
			MaxTokens:   500,
			Temperature: 0.3,
		},
	}
	return analysis.NewAnalyzer(logger, locator, settings), locator, client
}

func TestAnalyze_Comment(t *testing.T) {
	a, _, client := newAnalyzer("sk-test")
	client.On("Judge", mock.Anything, mock.MatchedBy(func(cfg *providers.Config) bool {
		return cfg.Model == "gpt-4o-mini" && cfg.MaxTokens == 500
	}), mock.MatchedBy(func(p providers.Prompt) bool {
		return p.User == "Content: great post!\nContext: reply to a story" && p.ImageDataURI == ""
	})).Return(mocks.JudgmentText(`{"sentiment":"positive"}`), nil).Once()

	result, err := a.Analyze(context.Background(), domain.Request{
		Kind:    domain.KindComment,
		Content: "great post!",
		Context: "reply to a story",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.KindComment, result.Kind)
	assert.Equal(t, `{"sentiment":"positive"}`, result.Analysis)
	client.AssertExpectations(t)
}

func TestAnalyze_Validation(t *testing.T) {
	a, locator, _ := newAnalyzer("sk-test")

	_, err := a.Analyze(context.Background(), domain.Request{Kind: "reel", Content: "x"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedKind)

	_, err = a.Analyze(context.Background(), domain.Request{Kind: domain.KindStory, Content: "  "})
	assert.ErrorIs(t, err, domain.ErrEmptyContent)

	locator.AssertNotCalled(t, "Get", mock.Anything)
}

func TestAnalyze_MissingCredential(t *testing.T) {
	a, _, _ := newAnalyzer("")

	_, err := a.Analyze(context.Background(), domain.Request{Kind: domain.KindStory, Content: "beach day"})

	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}

func TestAnalyze_UpstreamFailure(t *testing.T) {
	a, _, client := newAnalyzer("sk-test")
	client.On("Judge", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("status 500"))

	_, err := a.Analyze(context.Background(), domain.Request{Kind: domain.KindComment, Content: "hi"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestBuildPrompt(t *testing.T) {
	story := analysis.BuildPrompt(domain.Request{Kind: domain.KindStory, Content: "sunset"})
	assert.Contains(t, story.System, "social media stories")
	assert.Equal(t, "Content: sunset", story.User)

	comment := analysis.BuildPrompt(domain.Request{Kind: domain.KindComment, Content: "nice"})
	assert.Contains(t, comment.System, "Sentiment analysis")
}
