package pdfmill

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
)

// validate enforces that exactly one content source is set. It runs
// before any network I/O.
func (r ConvertRequest) validate() error {
	sources := 0
	if r.HTML != "" {
		sources++
	}
	if r.URL != "" {
		sources++
	}
	if r.FilePath != "" {
		sources++
	}

	switch {
	case sources == 0:
		return ErrNoContentSource
	case sources > 1:
		return ErrMultipleSources
	}

	return nil
}

// Convert runs the full lifecycle: submit, poll until terminal, fetch
// the result. When the request carries a WebhookURL the service will
// notify that endpoint instead, so Convert returns right after
// submission with only the job id set.
func (c *client) Convert(ctx context.Context, req ConvertRequest) (*ConvertResult, error) {
	jobID, err := c.CreateJob(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.WebhookURL != "" {
		return &ConvertResult{JobID: jobID}, nil
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.convertTimeout
	}

	return c.WaitForJob(ctx, jobID, WaitOptions{
		PollInterval: req.PollInterval,
		Timeout:      timeout,
		SaveTo:       req.SaveTo,
	})
}

// CreateJob submits a conversion and returns the job id without waiting
// for it. URL sources go up as JSON; file and inline-HTML sources go up
// as multipart, inline HTML through a temp artifact that is removed
// before CreateJob returns.
func (c *client) CreateJob(ctx context.Context, req ConvertRequest) (string, error) {
	if err := req.validate(); err != nil {
		return "", err
	}

	if req.URL != "" {
		return c.submitJSON(ctx, req)
	}

	return c.submitMultipart(ctx, req)
}

func (c *client) submitJSON(ctx context.Context, req ConvertRequest) (string, error) {
	var result convertResponse
	var remoteErr apiError

	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(jsonConvertBody{
			URL:        req.URL,
			Options:    req.PDFOptions,
			WebhookURL: req.WebhookURL,
		}).
		SetResult(&result).
		SetError(&remoteErr).
		Post(EndpointConvert)

	return jobIDFromResponse(resp, err, &result, &remoteErr)
}

func (c *client) submitMultipart(ctx context.Context, req ConvertRequest) (string, error) {
	filePath := req.FilePath
	if req.HTML != "" {
		tmp, err := writeTempHTML(req.HTML)
		if err != nil {
			return "", err
		}
		defer removeTempHTML(tmp)
		filePath = tmp
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", filePath, err)
	}
	defer file.Close()

	options, err := encodeOptions(req.PDFOptions)
	if err != nil {
		return "", err
	}

	fields := map[string]string{"options": options}
	if req.WebhookURL != "" {
		fields["webhookUrl"] = req.WebhookURL
	}

	var result convertResponse
	var remoteErr apiError

	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetFileReader("file", filepath.Base(filePath), file).
		SetFormData(fields).
		SetResult(&result).
		SetError(&remoteErr).
		Post(EndpointConvert)

	return jobIDFromResponse(resp, err, &result, &remoteErr)
}

// encodeOptions serializes the passthrough renderer options for the
// multipart `options` part. A nil map still sends an empty object so the
// part is always present.
func encodeOptions(options map[string]any) (string, error) {
	if options == nil {
		return "{}", nil
	}

	data, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("encode pdf options: %w", err)
	}

	return string(data), nil
}

// jobIDFromResponse maps a submission outcome onto a job id. Transport
// errors and remote rejections both become a ConversionError; only this
// path rewraps the status code, polling and download errors do not.
func jobIDFromResponse(resp *resty.Response, err error, result *convertResponse, remoteErr *apiError) (string, error) {
	if err != nil {
		return "", &ConversionError{Message: err.Error(), Err: err}
	}

	if !resp.IsSuccess() {
		msg := remoteErr.message()
		if msg == "" {
			msg = resp.Status()
		}
		return "", &ConversionError{StatusCode: resp.StatusCode(), Message: msg}
	}

	if result.JobID == "" {
		return "", ErrNoJobID
	}

	return result.JobID, nil
}
