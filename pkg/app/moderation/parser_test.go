package moderation_test

import (
	"testing"

	"github.com/NeuralTrust/ContentGuard/pkg/app/moderation"
	domain "github.com/NeuralTrust/ContentGuard/pkg/domain/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ValidJudgment(t *testing.T) {
	raw := `{
		"status": "failed",
		"confidence": 92,
		"violation_category": "violence_harassment",
		"issues": [{
			"category": "Violence & Harassment",
			"description": "A knife is visible",
			"severity": "high",
			"confidence": 88,
			"blocking_reason": "Weapon shown"
		}]
	}`

	result, err := moderation.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, result.Status)
	assert.Equal(t, 92.0, result.Confidence)
	assert.Equal(t, domain.ViolationViolenceHarassment, result.Category())
	require.Len(t, result.Issues, 1)
	assert.Equal(t, domain.Issue{
		Category:       "Violence & Harassment",
		Description:    "A knife is visible",
		Severity:       domain.SeverityHigh,
		Confidence:     88,
		BlockingReason: "Weapon shown",
	}, result.Issues[0])
}

func TestParse_PassedWithNullCategory(t *testing.T) {
	result, err := moderation.Parse(`{"status":"passed","confidence":97,"violation_category":null,"issues":[]}`)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPassed, result.Status)
	assert.Nil(t, result.ViolationCategory)
	assert.Empty(t, result.Issues)
}

func TestParse_DefaultsAndClamping(t *testing.T) {
	result, err := moderation.Parse(`{"confidence":250,"issues":[{"category":"Spam","confidence":-4}]}`)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFailed, result.Status, "missing status defaults to failed")
	assert.Equal(t, 100.0, result.Confidence)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, domain.SeverityHigh, result.Issues[0].Severity, "missing severity defaults to high")
	assert.Equal(t, 0.0, result.Issues[0].Confidence)
}

func TestParse_NonArrayIssuesIgnored(t *testing.T) {
	result, err := moderation.Parse(`{"status":"passed","confidence":90,"issues":"none"}`)
	require.NoError(t, err)
	assert.NotNil(t, result.Issues)
	assert.Empty(t, result.Issues)
}

func TestParse_FallsBackToAnalysisError(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		err  error
	}{
		{name: "empty", raw: "   ", err: domain.ErrEmptyJudgment},
		{name: "not json", raw: "I cannot help with that", err: domain.ErrSchemaViolation},
		{name: "array", raw: `[{"status":"passed"}]`, err: domain.ErrSchemaViolation},
		{name: "unknown status", raw: `{"status":"maybe"}`, err: domain.ErrSchemaViolation},
		{name: "numeric status", raw: `{"status":1}`, err: domain.ErrSchemaViolation},
		{name: "string confidence", raw: `{"status":"passed","confidence":"high"}`, err: domain.ErrSchemaViolation},
		{name: "issue without category", raw: `{"status":"failed","issues":[{"severity":"low"}]}`, err: domain.ErrSchemaViolation},
		{name: "issue not object", raw: `{"status":"failed","issues":["nudity"]}`, err: domain.ErrSchemaViolation},
		{name: "bad severity", raw: `{"status":"failed","issues":[{"category":"x","severity":"extreme"}]}`, err: domain.ErrSchemaViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := moderation.Parse(tt.raw)
			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, moderation.AnalysisErrorResult(), result)
		})
	}
}
