package pdfmill

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

type client struct {
	restyClient    *resty.Client
	transferClient *resty.Client
	apiKey         string
	webhookSecret  string
	pollInterval   time.Duration
	convertTimeout time.Duration
	jobTimeout     time.Duration

	// now and sleep exist so the poll loop can run under a fake clock
	// in tests; both are set by NewClient and never nil.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

var _ Client = (*client)(nil)

type Option func(*client)

func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		if baseURL != "" {
			c.restyClient.SetBaseURL(baseURL)
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *client) {
		if timeout > 0 {
			c.restyClient.SetTimeout(timeout)
		}
	}
}

// WithWebhookSecret sets the shared secret used by VerifyWebhook.
func WithWebhookSecret(secret string) Option {
	return func(c *client) {
		c.webhookSecret = secret
	}
}

// WithPollInterval customizes the delay between job status reads.
func WithPollInterval(interval time.Duration) Option {
	return func(c *client) {
		if interval > 0 {
			c.pollInterval = interval
		}
	}
}

// WithProcessingTimeout customizes the wait budget for Convert-initiated polling.
func WithProcessingTimeout(timeout time.Duration) Option {
	return func(c *client) {
		if timeout > 0 {
			c.convertTimeout = timeout
		}
	}
}

// WithJobTimeout customizes the wait budget for direct WaitForJob calls.
func WithJobTimeout(timeout time.Duration) Option {
	return func(c *client) {
		if timeout > 0 {
			c.jobTimeout = timeout
		}
	}
}

// WithRestyClient allows callers to provide a preconfigured API client.
func WithRestyClient(restyClient *resty.Client) Option {
	return func(c *client) {
		if restyClient != nil {
			c.restyClient = restyClient
		}
	}
}

// WithTransferClient overrides the client used to fetch download URLs,
// which point at hosts outside the API origin and carry no API key.
func WithTransferClient(transfer *resty.Client) Option {
	return func(c *client) {
		if transfer != nil {
			c.transferClient = transfer
		}
	}
}

func NewClient(apiKey string, opts ...Option) (Client, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}

	c := &client{
		restyClient:    newDefaultAPIClient(),
		apiKey:         apiKey,
		pollInterval:   DefaultPollInterval,
		convertTimeout: ConvertWaitTimeout,
		jobTimeout:     JobWaitTimeout,
		now:            time.Now,
		sleep:          sleepContext,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.restyClient == nil {
		c.restyClient = newDefaultAPIClient()
	}
	c.restyClient.SetHeader(APIKeyHeader, apiKey)

	if c.transferClient == nil {
		c.transferClient = newTransferClient()
	}

	return c, nil
}

// Name returns the service name.
func (c *client) Name() string {
	return ServiceName
}

// BaseURL returns the configured API origin.
func (c *client) BaseURL() string {
	return c.restyClient.BaseURL
}

func newDefaultAPIClient() *resty.Client {
	return resty.New().
		SetBaseURL(DefaultBaseURL).
		SetTimeout(DefaultTimeout)
}

func newTransferClient() *resty.Client {
	return resty.New().
		SetTimeout(DefaultTimeout)
}

// sleepContext blocks for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
