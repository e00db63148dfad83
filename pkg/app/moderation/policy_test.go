package moderation_test

import (
	"strings"
	"testing"

	"github.com/NeuralTrust/ContentGuard/pkg/app/moderation"
	domain "github.com/NeuralTrust/ContentGuard/pkg/domain/moderation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCriticalCategory(t *testing.T) {
	tests := []struct {
		category          string
		violationCategory string
		want              bool
	}{
		{"Personal Information", "", true},
		{"VIOLENCE", "", true},
		{"adult content", "", true},
		{"Partial Nudity", "", true},
		{"Harmful substances", "", true},
		{"dangerous stunt", "", true},
		{"Spam", "", false},
		{"Spam", domain.ViolationAdultContentNudity, true},
		{"Spam", "spam", false},
		{"", "", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, moderation.IsCriticalCategory(tt.category, tt.violationCategory), "%q/%q", tt.category, tt.violationCategory)
	}
}

func TestEnforce_PassedWithoutIssuesIsUnchanged(t *testing.T) {
	candidate := domain.Result{Status: domain.StatusPassed, Confidence: 95, Issues: []domain.Issue{}}

	result, escalation := moderation.Evaluate(candidate)

	assert.Equal(t, domain.StatusPassed, result.Status)
	assert.Nil(t, result.ViolationCategory)
	assert.Empty(t, result.Issues)
	assert.Equal(t, -1, escalation.IssueIndex)
	assert.Equal(t, moderation.RuleNone, escalation.Rule)
}

func TestEnforce_PassedClearsStrayCategory(t *testing.T) {
	result := moderation.Enforce(domain.Result{
		Status:            domain.StatusPassed,
		Confidence:        90,
		ViolationCategory: domain.StringPtr(domain.ViolationHarmfulDangerous),
	})
	assert.Equal(t, domain.StatusPassed, result.Status)
	assert.Nil(t, result.ViolationCategory)
}

func TestEnforce_OverridesPassedWithIssues(t *testing.T) {
	tests := []struct {
		name  string
		issue domain.Issue
		rule  moderation.Rule
	}{
		{
			name:  "critical keyword at low confidence",
			issue: domain.Issue{Category: "Personal Information", Severity: domain.SeverityLow, Confidence: 10},
			rule:  moderation.RuleCriticalCategory,
		},
		{
			name:  "confidence at threshold",
			issue: domain.Issue{Category: "Spam", Severity: domain.SeverityLow, Confidence: 50},
			rule:  moderation.RuleConfidence,
		},
		{
			name:  "high severity",
			issue: domain.Issue{Category: "Spam", Severity: domain.SeverityHigh, Confidence: 20},
			rule:  moderation.RuleHighSeverity,
		},
		{
			name:  "zero tolerance",
			issue: domain.Issue{Category: "Spam", Severity: domain.SeverityLow, Confidence: 5},
			rule:  moderation.RuleZeroTolerance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, escalation := moderation.Evaluate(domain.Result{
				Status:     domain.StatusPassed,
				Confidence: 80,
				Issues:     []domain.Issue{tt.issue},
			})

			assert.Equal(t, domain.StatusFailed, result.Status)
			assert.Equal(t, tt.rule, escalation.Rule)
			assert.Equal(t, 0, escalation.IssueIndex)
			require.Len(t, result.Issues, 1)
			assert.NotEmpty(t, result.Issues[0].BlockingReason)
			assert.NotEmpty(t, result.Category())
		})
	}
}

func TestEnforce_CitesFirstMatchingIssue(t *testing.T) {
	result, escalation := moderation.Evaluate(domain.Result{
		Status: domain.StatusPassed,
		Issues: []domain.Issue{
			{Category: "Blurry", Severity: domain.SeverityLow, Confidence: 10},
			{Category: "Spam", Severity: domain.SeverityHigh, Confidence: 20},
		},
	})

	assert.Equal(t, 1, escalation.IssueIndex)
	assert.Equal(t, moderation.RuleHighSeverity, escalation.Rule)
	assert.Empty(t, result.Issues[0].BlockingReason)
	assert.Contains(t, result.Issues[1].BlockingReason, "Spam")
	assert.Equal(t, "spam", result.Category())
	assert.Equal(t, result, moderation.Enforce(result))
}

func TestEnforce_CitesFirstMatchAheadOfLaterModelReason(t *testing.T) {
	result, escalation := moderation.Evaluate(domain.Result{
		Status: domain.StatusPassed,
		Issues: []domain.Issue{
			{Category: "x", BlockingReason: "   "},
			{Category: "Personal data", BlockingReason: "model"},
		},
	})

	assert.Equal(t, 0, escalation.IssueIndex)
	assert.Equal(t, moderation.RuleHighSeverity, escalation.Rule)
	assert.NotEmpty(t, strings.TrimSpace(result.Issues[0].BlockingReason))
	assert.Equal(t, "model", result.Issues[1].BlockingReason)
	assert.Equal(t, "x", result.Category())
	assert.Equal(t, result, moderation.Enforce(result))
}

func TestEnforce_DerivedCriticalCategoryCitesFirstIssue(t *testing.T) {
	result, escalation := moderation.Evaluate(domain.Result{
		Status: domain.StatusPassed,
		Issues: []domain.Issue{
			{Category: "Blurry", Severity: domain.SeverityLow, Confidence: 10},
			{Category: "Adult content", Severity: domain.SeverityMedium, Confidence: 40},
		},
	})

	assert.Equal(t, domain.ViolationAdultContentNudity, result.Category())
	assert.Equal(t, 0, escalation.IssueIndex)
	assert.Equal(t, moderation.RuleCriticalCategory, escalation.Rule)
	assert.Contains(t, result.Issues[0].BlockingReason, domain.ViolationAdultContentNudity)
	assert.Empty(t, result.Issues[1].BlockingReason)
	assert.Equal(t, result, moderation.Enforce(result))
}

func TestEnforce_KeepsModelBlockingReason(t *testing.T) {
	result := moderation.Enforce(domain.Result{
		Status:            domain.StatusFailed,
		Confidence:        90,
		ViolationCategory: domain.StringPtr(domain.ViolationViolenceHarassment),
		Issues: []domain.Issue{{
			Category:       "Violence & Harassment",
			Severity:       domain.SeverityHigh,
			Confidence:     90,
			BlockingReason: "Weapon pointed at camera",
		}},
	})

	assert.Equal(t, "Weapon pointed at camera", result.Issues[0].BlockingReason)
	assert.Equal(t, domain.ViolationViolenceHarassment, result.Category())
}

func TestEnforce_FailedWithoutIssuesGetsUnspecifiedIssue(t *testing.T) {
	result := moderation.Enforce(domain.Result{Status: domain.StatusFailed, Confidence: 75})

	assert.Equal(t, domain.StatusFailed, result.Status)
	require.Len(t, result.Issues, 1)
	assert.Equal(t, domain.CategoryUnspecified, result.Issues[0].Category)
	assert.Equal(t, domain.SeverityHigh, result.Issues[0].Severity)
	assert.NotEmpty(t, result.Issues[0].BlockingReason)
	assert.Equal(t, "unspecified_violation", result.Category())
}

func TestEnforce_NormalizesInvalidValues(t *testing.T) {
	result := moderation.Enforce(domain.Result{
		Status:     "unknown",
		Confidence: 140,
		Issues:     []domain.Issue{{Category: "Spam", Severity: "extreme", Confidence: -3}},
	})

	assert.Equal(t, domain.StatusFailed, result.Status)
	assert.Equal(t, 100.0, result.Confidence)
	assert.Equal(t, domain.SeverityHigh, result.Issues[0].Severity)
	assert.Equal(t, 0.0, result.Issues[0].Confidence)
}

func TestEnforce_DoesNotMutateInput(t *testing.T) {
	candidate := domain.Result{
		Status: domain.StatusPassed,
		Issues: []domain.Issue{{Category: "Spam", Severity: domain.SeverityHigh}},
	}

	_ = moderation.Enforce(candidate)

	assert.Equal(t, domain.StatusPassed, candidate.Status)
	assert.Empty(t, candidate.Issues[0].BlockingReason)
	assert.Nil(t, candidate.ViolationCategory)
}

func TestEnforce_StatusFailedIffIssues(t *testing.T) {
	statuses := []domain.Status{domain.StatusPassed, domain.StatusFailed, "", "bogus"}
	issueSets := [][]domain.Issue{
		nil,
		{{Category: "Spam", Severity: domain.SeverityLow, Confidence: 1}},
		{{Category: "Blur", Severity: domain.SeverityMedium, Confidence: 30}, {Category: "Weapons violence", Severity: domain.SeverityLow}},
	}

	for _, status := range statuses {
		for _, issues := range issueSets {
			once := moderation.Enforce(domain.Result{Status: status, Confidence: 60, Issues: issues})

			assert.Equal(t, once.Status == domain.StatusFailed, len(once.Issues) > 0, "status %q with %d issues", status, len(issues))
			if once.Status == domain.StatusFailed {
				assert.NotEmpty(t, once.Category())
				cited := 0
				for _, issue := range once.Issues {
					if issue.BlockingReason != "" {
						cited++
					}
				}
				assert.GreaterOrEqual(t, cited, 1)
			} else {
				assert.Nil(t, once.ViolationCategory)
			}

			assert.Equal(t, once, moderation.Enforce(once), "enforce must be idempotent")
		}
	}
}

func TestCanonicalCategory(t *testing.T) {
	tests := map[string]string{
		"personal_information":  domain.ViolationPersonalInformation,
		"Personal Information":  domain.ViolationPersonalInformation,
		"Violence & Harassment": domain.ViolationViolenceHarassment,
		"Nudity":                domain.ViolationAdultContentNudity,
		"Dangerous Stunts":      domain.ViolationHarmfulDangerous,
		"Spam  Content":         "spam_content",
		"":                      "unspecified",
	}
	for in, want := range tests {
		assert.Equal(t, want, moderation.CanonicalCategory(in), in)
	}
}
