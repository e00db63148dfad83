package moderation

import "math"

type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

func (s Status) Valid() bool {
	return s == StatusPassed || s == StatusFailed
}

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

type Issue struct {
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Severity       Severity `json:"severity"`
	Confidence     float64  `json:"confidence"`
	BlockingReason string   `json:"blocking_reason,omitempty"`
}

// Result is the moderation decision returned to callers.
// Status is failed if and only if Issues is non-empty.
type Result struct {
	Status            Status  `json:"status"`
	Confidence        float64 `json:"confidence"`
	ViolationCategory *string `json:"violation_category"`
	Issues            []Issue `json:"issues"`
}

func (r Result) Passed() bool {
	return r.Status == StatusPassed
}

// Category returns the violation category or an empty string.
func (r Result) Category() string {
	if r.ViolationCategory == nil {
		return ""
	}
	return *r.ViolationCategory
}

// Clone returns a deep copy so callers can rewrite issues without aliasing.
func (r Result) Clone() Result {
	out := r
	if r.ViolationCategory != nil {
		vc := *r.ViolationCategory
		out.ViolationCategory = &vc
	}
	out.Issues = make([]Issue, len(r.Issues))
	copy(out.Issues, r.Issues)
	return out
}

func ClampConfidence(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}

func StringPtr(s string) *string {
	return &s
}
