package pdfmill

import "time"

// JobStatus enumerates conversion job states reported by the service.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether no further status transition can occur.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// ConvertRequest describes one conversion. Exactly one of HTML, URL, or
// FilePath must be set; CreateJob rejects anything else before touching
// the network.
type ConvertRequest struct {
	// HTML is inline markup rendered as the document body.
	HTML string
	// URL is a public address the service fetches and renders.
	URL string
	// FilePath is a local HTML file uploaded as-is.
	FilePath string

	// PDFOptions is passed through to the renderer unmodified.
	PDFOptions map[string]any

	// WebhookURL, when set, makes the service notify that endpoint on
	// completion; Convert then returns the job id without polling.
	WebhookURL string

	// PollInterval overrides DefaultPollInterval for this call.
	PollInterval time.Duration
	// Timeout overrides ConvertWaitTimeout for this call.
	Timeout time.Duration
	// SaveTo, when set, streams the finished PDF into this path instead
	// of buffering it in memory.
	SaveTo string
}

// Job is the client's read-only view of a server-side conversion job.
type Job struct {
	JobID        string    `json:"jobId"`
	Status       JobStatus `json:"status"`
	DownloadURL  string    `json:"downloadUrl,omitempty"`  // present once completed
	ErrorMessage string    `json:"errorMessage,omitempty"` // present once failed
}

// ConvertResult is the outcome of Convert or WaitForJob. JobID is always
// set. Exactly one of Data or Path is populated once a job was polled to
// completion: Path when the caller asked for direct-to-disk delivery,
// Data otherwise. Both stay empty when a webhook URL skipped polling.
type ConvertResult struct {
	JobID string
	Data  []byte
	Path  string
}

// WebhookEvent is the payload the service delivers to webhook endpoints,
// returned by VerifyWebhook only after the signature checked out.
type WebhookEvent struct {
	JobID        string    `json:"jobId"`
	Status       JobStatus `json:"status"`
	DownloadURL  string    `json:"downloadUrl,omitempty"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
}

// convertResponse is the wire shape of a successful POST /convert.
type convertResponse struct {
	JobID  string    `json:"jobId"`
	Status JobStatus `json:"status"`
}

// apiError is the wire shape the service uses for rejections.
type apiError struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// message returns the most specific remote-supplied text, if any.
func (e apiError) message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// jsonConvertBody is the JSON submission shape used for the URL source.
type jsonConvertBody struct {
	URL        string         `json:"url"`
	Options    map[string]any `json:"options,omitempty"`
	WebhookURL string         `json:"webhookUrl,omitempty"`
}
