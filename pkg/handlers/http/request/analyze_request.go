package request

import (
	domain "github.com/NeuralTrust/ContentGuard/pkg/domain/analysis"
)

type AnalyzeRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Context string `json:"context,omitempty"`
}

func (r *AnalyzeRequest) ToDomain() domain.Request {
	return domain.Request{
		Kind:    domain.Kind(r.Type),
		Content: r.Content,
		Context: r.Context,
	}
}
