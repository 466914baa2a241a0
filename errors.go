package pdfmill

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptyAPIKey          = errors.New("api key cannot be empty")
	ErrNoContentSource      = errors.New("one of HTML, URL or FilePath is required")
	ErrMultipleSources      = errors.New("only one of HTML, URL or FilePath may be set")
	ErrEmptyJobID           = errors.New("job id cannot be empty")
	ErrEmptyDownloadURL     = errors.New("download url cannot be empty")
	ErrNilWriter            = errors.New("writer cannot be nil")
	ErrMissingWebhookSecret = errors.New("Missing webhookSecret: pass it to NewClient to verify webhooks")
	ErrInvalidSignature     = errors.New("Invalid webhook signature")
	ErrMalformedPayload     = errors.New("Invalid JSON in webhook payload")
	ErrNoJobID              = errors.New("Failed to create conversion job")
)

// ConversionError reports a submission the service rejected or that
// failed in transit. StatusCode is 0 when the request never reached the
// service.
type ConversionError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("PDF conversion failed (status: %d): %s", e.StatusCode, e.Message)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// JobFailedError reports a job the service moved to the failed state.
type JobFailedError struct {
	JobID  string
	Reason string
}

func (e *JobFailedError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "Unknown error"
	}
	return "PDF conversion failed: " + reason
}

// TimeoutError reports a poll loop that exhausted its wall-clock budget.
type TimeoutError struct {
	JobID   string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("PDF conversion timed out after %d seconds waiting for completion", int(e.Timeout.Seconds()))
}
