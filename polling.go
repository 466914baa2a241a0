package pdfmill

import (
	"context"
	"fmt"
	"time"
)

// waitWithPolling repeatedly fetches job state at a constant interval
// until evaluate reports completion, the job fails, or elapsed wall
// clock exceeds timeout. The interval never backs off and fetch errors
// are never retried here; retry policy belongs to callers.
func waitWithPolling[T any](ctx context.Context, c *client, jobID string, pollInterval, timeout time.Duration,
	fetch func(context.Context, string) (*T, error),
	evaluate func(*T) (bool, error),
) (*T, error) {
	if pollInterval <= 0 {
		pollInterval = c.pollInterval
	}
	if timeout <= 0 {
		timeout = c.jobTimeout
	}

	start := c.now()

	for {
		result, err := fetch(ctx, jobID)
		if err != nil {
			return nil, err
		}

		done, evalErr := evaluate(result)
		if evalErr != nil {
			return nil, evalErr
		}
		if done {
			return result, nil
		}

		if c.now().Sub(start) > timeout {
			return nil, &TimeoutError{JobID: jobID, Timeout: timeout}
		}

		if err := c.sleep(ctx, pollInterval); err != nil {
			return nil, fmt.Errorf("waiting for job %s cancelled: %w", jobID, err)
		}
	}
}
