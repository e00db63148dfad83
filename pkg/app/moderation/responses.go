package moderation

import (
	domain "github.com/NeuralTrust/ContentGuard/pkg/domain/moderation"
)

const (
	analysisErrorDescription = "Could not analyze content properly. Upload blocked for safety."
	analysisErrorReason      = "System unable to verify content safety"
	systemErrorDescription   = "Content moderation system error. Upload blocked for safety."
	systemErrorReason        = "Critical system error during content analysis"
)

// NewErrorResult is a blocked result for conditions that prevent analysis from
// running at all, such as a missing credential.
func NewErrorResult(message, category string) domain.Result {
	if category == "" {
		category = domain.CategoryConfigurationError
	}
	return failedResult(domain.Issue{
		Category:       category,
		Description:    message,
		Severity:       domain.SeverityHigh,
		Confidence:     100,
		BlockingReason: "Content could not be verified: " + message,
	})
}

// SystemErrorResult is the catch-all result for unexpected failures.
func SystemErrorResult() domain.Result {
	return failedResult(domain.Issue{
		Category:       domain.CategorySystemError,
		Description:    systemErrorDescription,
		Severity:       domain.SeverityHigh,
		Confidence:     100,
		BlockingReason: systemErrorReason,
	})
}

// AnalysisErrorResult is returned when the model output cannot be parsed.
func AnalysisErrorResult() domain.Result {
	return failedResult(domain.Issue{
		Category:       domain.CategoryAnalysisError,
		Description:    analysisErrorDescription,
		Severity:       domain.SeverityHigh,
		Confidence:     100,
		BlockingReason: analysisErrorReason,
	})
}

func failedResult(issue domain.Issue) domain.Result {
	return domain.Result{
		Status:            domain.StatusFailed,
		Confidence:        100,
		ViolationCategory: domain.StringPtr(domain.ViolationSystemError),
		Issues:            []domain.Issue{issue},
	}
}
