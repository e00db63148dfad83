package common

type contextKey string

const (
	RequestIDContextKey  contextKey = "request_id"
	SubjectContextKey    contextKey = "subject"
	UserAgentContextKey  contextKey = "user_agent_info"
	StartTimeContextKey  contextKey = "__start_time"
	RouteLabelContextKey contextKey = "__route_label"
)
