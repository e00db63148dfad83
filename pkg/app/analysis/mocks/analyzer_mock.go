package mocks

import (
	"context"

	domain "github.com/NeuralTrust/ContentGuard/pkg/domain/analysis"
	"github.com/stretchr/testify/mock"
)

type Analyzer struct {
	mock.Mock
}

func (m *Analyzer) Analyze(ctx context.Context, req domain.Request) (*domain.Result, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*domain.Result) //nolint:errcheck
	return result, args.Error(1)
}
