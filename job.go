package pdfmill

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// WaitOptions tunes a WaitForJob call. Zero values fall back to the
// client defaults (DefaultPollInterval, JobWaitTimeout).
type WaitOptions struct {
	PollInterval time.Duration
	Timeout      time.Duration
	// SaveTo streams the finished PDF into this path; when empty the
	// result is buffered in memory instead.
	SaveTo string
}

// GetJob reads the current state of a conversion job.
func (c *client) GetJob(ctx context.Context, jobID string) (*Job, error) {
	if jobID == "" {
		return nil, ErrEmptyJobID
	}

	var job Job
	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetResult(&job).
		Get(EndpointJobs + "/" + url.PathEscape(jobID))

	if err != nil {
		return nil, fmt.Errorf("get job %s failed: %w", jobID, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("get job %s failed with status %d: %s", jobID, resp.StatusCode(), resp.Status())
	}

	return &job, nil
}

// WaitForJob polls a job until it completes, fails, or the wait budget
// runs out, then materializes the result per opts.SaveTo.
func (c *client) WaitForJob(ctx context.Context, jobID string, opts WaitOptions) (*ConvertResult, error) {
	if jobID == "" {
		return nil, ErrEmptyJobID
	}

	job, err := waitWithPolling(ctx, c, jobID, opts.PollInterval, opts.Timeout, c.GetJob, func(job *Job) (bool, error) {
		switch job.Status {
		case JobStatusCompleted:
			// completed without a download URL means the artifact is not
			// linkable yet; keep polling until it is.
			return job.DownloadURL != "", nil
		case JobStatusFailed:
			return false, &JobFailedError{JobID: jobID, Reason: job.ErrorMessage}
		default:
			return false, nil
		}
	})
	if err != nil {
		return nil, err
	}

	return c.materialize(ctx, jobID, job.DownloadURL, opts.SaveTo)
}

// materialize turns a completed job's download URL into bytes or a file
// on disk. The file path only resolves after the file is flushed and
// closed.
func (c *client) materialize(ctx context.Context, jobID, downloadURL, saveTo string) (*ConvertResult, error) {
	if saveTo == "" {
		data, err := c.DownloadFile(ctx, downloadURL)
		if err != nil {
			return nil, err
		}
		return &ConvertResult{JobID: jobID, Data: data}, nil
	}

	if dir := filepath.Dir(saveTo); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create download dir: %w", err)
		}
	}

	file, err := os.Create(saveTo)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	if err := c.DownloadFileTo(ctx, downloadURL, file); err != nil {
		file.Close()
		return nil, err
	}

	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("flush %s: %w", saveTo, err)
	}

	return &ConvertResult{JobID: jobID, Path: saveTo}, nil
}
