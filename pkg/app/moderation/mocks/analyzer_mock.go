package mocks

import (
	"context"

	"github.com/NeuralTrust/ContentGuard/pkg/app/moderation"
	domain "github.com/NeuralTrust/ContentGuard/pkg/domain/moderation"
	"github.com/stretchr/testify/mock"
)

type Analyzer struct {
	mock.Mock
}

func (m *Analyzer) Moderate(ctx context.Context, req domain.Request) moderation.Decision {
	args := m.Called(ctx, req)
	decision, _ := args.Get(0).(moderation.Decision) //nolint:errcheck
	return decision
}
