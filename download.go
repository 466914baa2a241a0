package pdfmill

import (
	"context"
	"fmt"
	"io"
)

// DownloadFile downloads a file from the given URL.
func (c *client) DownloadFile(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrEmptyDownloadURL
	}

	resp, err := c.transferClient.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("download file from %s failed: %w", url, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("download file failed with status %d: %s", resp.StatusCode(), resp.Status())
	}

	data := resp.Body()
	if len(data) == 0 {
		return nil, fmt.Errorf("downloaded file is empty")
	}

	return data, nil
}

// DownloadFileTo streams a file from the given URL into dst without
// buffering the whole body in memory.
func (c *client) DownloadFileTo(ctx context.Context, url string, dst io.Writer) error {
	if url == "" {
		return ErrEmptyDownloadURL
	}

	if dst == nil {
		return ErrNilWriter
	}

	resp, err := c.transferClient.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)

	if err != nil {
		return fmt.Errorf("download file from %s failed: %w", url, err)
	}

	body := resp.RawBody()
	defer body.Close()

	if !resp.IsSuccess() {
		return fmt.Errorf("download file failed with status %d: %s", resp.StatusCode(), resp.Status())
	}

	if _, err := io.Copy(dst, body); err != nil {
		return fmt.Errorf("write downloaded file failed: %w", err)
	}

	return nil
}
