package mocks

import (
	"context"

	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (m *Client) Judge(ctx context.Context, config *providers.Config, prompt providers.Prompt) (*providers.Judgment, error) {
	args := m.Called(ctx, config, prompt)
	judgment, _ := args.Get(0).(*providers.Judgment) //nolint:errcheck
	return judgment, args.Error(1)
}

// JudgmentText is a shorthand for a successful judgment carrying text.
func JudgmentText(text string) *providers.Judgment {
	return &providers.Judgment{ID: "judgment-test", Model: "test-model", Text: text}
}
