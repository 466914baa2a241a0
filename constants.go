package pdfmill

import "time"

const (
	ServiceName    = "pdfmill"
	DefaultBaseURL = "https://api.pdfmill.io"
	DefaultTimeout = 5 * time.Minute
	APIKeyHeader   = "x-api-key"
)

// Polling defaults. Convert-initiated waits and direct WaitForJob calls
// carry different budgets; both are overridable per call.
const (
	DefaultPollInterval = 2 * time.Second
	ConvertWaitTimeout  = 5 * time.Minute
	JobWaitTimeout      = 15 * time.Minute
)

// API endpoints
const (
	EndpointConvert = "/convert"
	EndpointJobs    = "/jobs"
)

// SignaturePrefix is the scheme tag carried by webhook signature headers.
const SignaturePrefix = "sha256="
