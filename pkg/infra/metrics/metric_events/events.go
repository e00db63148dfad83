package metric_events

import (
	"time"

	"github.com/google/uuid"
)

const (
	DecisionType = "moderation_decision"
	AnalysisType = "content_analysis"
)

// OutcomeDecided marks a decision reached by the model rather than a fallback.
const OutcomeDecided = "decided"

// Event is one exported record per moderation or analysis call. It never
// carries image payloads or caption text.
type Event struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	RequestID      string `json:"request_id,omitempty"`
	Subject        string `json:"subject,omitempty"`
	StartTimestamp int64  `json:"start_timestamp"`
	EndTimestamp   int64  `json:"end_timestamp"`
	Latency        int64  `json:"latency"`
	IP             string `json:"user_ip,omitempty"`

	Locale  string `json:"locale,omitempty"`
	Device  string `json:"device,omitempty"`
	Os      string `json:"os,omitempty"`
	Browser string `json:"browser,omitempty"`

	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`

	Decision *DecisionData `json:"decision,omitempty"`
	Analysis *AnalysisData `json:"analysis,omitempty"`
}

type DecisionData struct {
	Filename          string  `json:"filename"`
	DeclaredType      string  `json:"declared_type"`
	HasImage          bool    `json:"has_image"`
	FileCount         int     `json:"file_count,omitempty"`
	Status            string  `json:"status"`
	Confidence        float64 `json:"confidence"`
	ViolationCategory string  `json:"violation_category,omitempty"`
	IssueCount        int     `json:"issue_count"`
	Outcome           string  `json:"outcome"`
	Rule              string  `json:"rule,omitempty"`
}

type AnalysisData struct {
	Kind    string `json:"kind"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func NewDecisionEvent(start time.Time) *Event {
	return newEvent(DecisionType, start)
}

func NewAnalysisEvent(start time.Time) *Event {
	return newEvent(AnalysisType, start)
}

func newEvent(kind string, start time.Time) *Event {
	now := time.Now()
	return &Event{
		ID:             uuid.New().String(),
		Type:           kind,
		StartTimestamp: start.Unix(),
		EndTimestamp:   now.Unix(),
		Latency:        now.Sub(start).Milliseconds(),
	}
}

func (evt *Event) IsTypeDecision() bool {
	return evt.Type == DecisionType
}
