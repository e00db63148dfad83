package common

const (
	RequestIDHeader  = "X-Request-Id"
	ClientInfoHeader = "X-Client-Info"

	// DevelopmentTrustedHost is the local listen address. It is never trusted by default.
	DevelopmentTrustedHost = "localhost:54321"

	ModeratePath = "/moderate"
	AnalyzePath  = "/analyze"
)
