package pdfmill

import (
	"context"
	"io"
)

// Info provides metadata about the client
type Info interface {
	Name() string
	BaseURL() string
}

// Converter submits conversion jobs and runs the full lifecycle.
type Converter interface {
	Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error)
	CreateJob(ctx context.Context, req ConvertRequest) (string, error)
}

// Jobs observes server-side job state.
type Jobs interface {
	GetJob(ctx context.Context, jobID string) (*Job, error)
	WaitForJob(ctx context.Context, jobID string, opts WaitOptions) (*ConvertResult, error)
}

// Downloader handles file download operations
type Downloader interface {
	DownloadFile(ctx context.Context, url string) ([]byte, error)
	DownloadFileTo(ctx context.Context, url string, dst io.Writer) error
}

// WebhookVerifier authenticates inbound webhook deliveries.
type WebhookVerifier interface {
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

// Client combines all pdfmill operations
type Client interface {
	Info
	Converter
	Jobs
	Downloader
	WebhookVerifier
}
