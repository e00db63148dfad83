package moderation

import (
	"fmt"
	"strings"

	domain "github.com/NeuralTrust/ContentGuard/pkg/domain/moderation"
)

// Rule names the condition that escalated a result to failed.
type Rule string

const (
	RuleNone             Rule = ""
	RuleCriticalCategory Rule = "critical_category"
	RuleConfidence       Rule = "confidence_threshold"
	RuleHighSeverity     Rule = "high_severity"
	RuleZeroTolerance    Rule = "zero_tolerance"
)

// Escalation identifies the issue cited for a failed result.
type Escalation struct {
	IssueIndex int
	Rule       Rule
}

// IsCriticalCategory matches an issue category against the critical keywords
// (case-insensitive substring) or the result's violation category against the
// canonical critical identifiers.
func IsCriticalCategory(category, violationCategory string) bool {
	lower := strings.ToLower(category)
	for _, keyword := range domain.CriticalKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	for _, id := range domain.CriticalViolations {
		if violationCategory == id {
			return true
		}
	}
	return false
}

// Enforce applies the zero tolerance policy to a provisional result. It is a
// pure function and idempotent: Enforce(Enforce(r)) == Enforce(r).
func Enforce(candidate domain.Result) domain.Result {
	result, _ := Evaluate(candidate)
	return result
}

// Evaluate is Enforce that also reports which issue and rule drove a failure.
// A passed result reports RuleNone and IssueIndex -1.
func Evaluate(candidate domain.Result) (domain.Result, Escalation) {
	result := normalize(candidate)

	if len(result.Issues) == 0 {
		if result.Status == domain.StatusPassed {
			result.ViolationCategory = nil
			return result, Escalation{IssueIndex: -1}
		}
		// failed without issues still blocks and must explain itself
		result.Issues = []domain.Issue{unspecifiedIssue(result.Confidence)}
	}

	escalation := selectEscalation(result.Issues, result.Category())
	if result.Category() == "" {
		// The derived category feeds the critical-category rule, so the cited
		// issue is selected again against the category that is returned.
		result.ViolationCategory = domain.StringPtr(CanonicalCategory(result.Issues[escalation.IssueIndex].Category))
		escalation = selectEscalation(result.Issues, result.Category())
	}

	result.Status = domain.StatusFailed
	cited := &result.Issues[escalation.IssueIndex]
	if strings.TrimSpace(cited.BlockingReason) == "" {
		cited.BlockingReason = blockingReason(escalation.Rule, *cited, result.Category())
	}
	return result, escalation
}

func normalize(candidate domain.Result) domain.Result {
	result := candidate.Clone()
	result.Confidence = domain.ClampConfidence(result.Confidence)
	if !result.Status.Valid() {
		result.Status = domain.StatusFailed
	}
	for i := range result.Issues {
		result.Issues[i].Confidence = domain.ClampConfidence(result.Issues[i].Confidence)
		if !result.Issues[i].Severity.Valid() {
			result.Issues[i].Severity = domain.SeverityHigh
		}
	}
	return result
}

// selectEscalation cites the first issue matching a rule, falling back to the
// first issue under zero tolerance.
func selectEscalation(issues []domain.Issue, violationCategory string) Escalation {
	for i, issue := range issues {
		if rule := matchRule(issue, violationCategory); rule != RuleNone {
			return Escalation{IssueIndex: i, Rule: rule}
		}
	}
	return Escalation{IssueIndex: 0, Rule: RuleZeroTolerance}
}

func matchRule(issue domain.Issue, violationCategory string) Rule {
	switch {
	case IsCriticalCategory(issue.Category, violationCategory):
		return RuleCriticalCategory
	case issue.Confidence >= domain.ThresholdLowConfidence:
		return RuleConfidence
	case issue.Severity == domain.SeverityHigh:
		return RuleHighSeverity
	}
	return RuleNone
}

func blockingReason(rule Rule, issue domain.Issue, violationCategory string) string {
	switch rule {
	case RuleCriticalCategory:
		if !IsCriticalCategory(issue.Category, "") {
			return fmt.Sprintf("Critical violation category detected: %s (%s)", violationCategory, issue.Category)
		}
		return fmt.Sprintf("Critical violation category detected: %s", issue.Category)
	case RuleConfidence:
		return fmt.Sprintf("Violation detected with %.0f%% confidence (blocking threshold %d%%): %s",
			issue.Confidence, domain.ThresholdLowConfidence, issue.Category)
	case RuleHighSeverity:
		return fmt.Sprintf("High severity issue: %s", issue.Category)
	}
	return fmt.Sprintf("Zero tolerance policy: any detected issue blocks the upload (%s)", issue.Category)
}

func unspecifiedIssue(confidence float64) domain.Issue {
	return domain.Issue{
		Category:    domain.CategoryUnspecified,
		Description: "The content was judged unsafe but no specific issue was reported. Upload blocked for safety.",
		Severity:    domain.SeverityHigh,
		Confidence:  confidence,
	}
}

// CanonicalCategory maps a free-form issue category onto a critical
// identifier when a keyword matches, otherwise onto a snake_case form.
func CanonicalCategory(category string) string {
	lower := strings.ToLower(strings.TrimSpace(category))
	for _, id := range domain.CriticalViolations {
		if lower == id {
			return id
		}
	}
	switch {
	case strings.Contains(lower, "personal"):
		return domain.ViolationPersonalInformation
	case strings.Contains(lower, "violence"):
		return domain.ViolationViolenceHarassment
	case strings.Contains(lower, "adult"), strings.Contains(lower, "nudity"):
		return domain.ViolationAdultContentNudity
	case strings.Contains(lower, "harmful"), strings.Contains(lower, "dangerous"):
		return domain.ViolationHarmfulDangerous
	}
	if lower == "" {
		return "unspecified"
	}
	return strings.Join(strings.Fields(lower), "_")
}
