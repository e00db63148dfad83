package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/NeuralTrust/ContentGuard/pkg/domain/analysis"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers/factory"
	"github.com/sirupsen/logrus"
)

const commentPrompt = `You are an AI content analyst. Analyze the following comment and provide:
1. Sentiment analysis (positive, negative, neutral with confidence score)
2. Content moderation flags (inappropriate, spam, harassment)
3. Key topics or themes mentioned
4. Engagement prediction (high, medium, low)
5. Brief summary of the comment's intent

Respond in JSON format with clear, actionable insights.`

const storyPrompt = `You are an AI content analyst for social media stories. Analyze the story content and provide:
1. Content type classification (lifestyle, professional, entertainment, etc.)
2. Engagement prediction based on visual elements
3. Optimal posting time recommendations
4. Audience targeting suggestions
5. Content quality assessment

Respond in JSON format with practical recommendations.`

type Settings struct {
	Provider       string
	ProviderConfig providers.Config
	Timeout        time.Duration
}

//go:generate mockery --name=Analyzer --dir=. --output=./mocks --filename=analyzer_mock.go --case=underscore --with-expecter
type Analyzer interface {
	Analyze(ctx context.Context, req domain.Request) (*domain.Result, error)
}

type analyzer struct {
	logger   *logrus.Logger
	locator  factory.ProviderLocator
	settings Settings
}

func NewAnalyzer(logger *logrus.Logger, locator factory.ProviderLocator, settings Settings) Analyzer {
	return &analyzer{
		logger:   logger,
		locator:  locator,
		settings: settings,
	}
}

// Validate reports request errors that are the caller's fault.
func Validate(req domain.Request) error {
	if !req.Kind.Valid() {
		return domain.ErrUnsupportedKind
	}
	if strings.TrimSpace(req.Content) == "" {
		return domain.ErrEmptyContent
	}
	return nil
}

func (a *analyzer) Analyze(ctx context.Context, req domain.Request) (*domain.Result, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	if !a.settings.ProviderConfig.Credentials.HasCredential(a.settings.Provider) {
		return nil, domain.ErrMissingCredential
	}

	client, err := a.locator.Get(a.settings.Provider)
	if err != nil {
		return nil, err
	}
	if a.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.settings.Timeout)
		defer cancel()
	}

	cfg := a.settings.ProviderConfig
	judgment, err := client.Judge(ctx, &cfg, BuildPrompt(req))
	if err != nil {
		a.logger.WithError(err).WithField("type", req.Kind).Error("content analysis failed")
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	if judgment == nil {
		return nil, errors.New("analysis provider returned no content")
	}

	a.logger.WithFields(logrus.Fields{
		"type":         req.Kind,
		"model":        judgment.Model,
		"total_tokens": judgment.Usage.TotalTokens,
	}).Debug("content analysis completed")

	return &domain.Result{
		Kind:     req.Kind,
		Analysis: judgment.Text,
		Model:    judgment.Model,
	}, nil
}

func BuildPrompt(req domain.Request) providers.Prompt {
	system := commentPrompt
	if req.Kind == domain.KindStory {
		system = storyPrompt
	}
	user := "Content: " + req.Content
	if req.Context != "" {
		user += "\nContext: " + req.Context
	}
	return providers.Prompt{System: system, User: user}
}
