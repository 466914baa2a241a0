package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/spf13/cobra"

	pdfmill "github.com/pdfmill/pdfmill-go"
)

func buildClient(apiKey string, opts *cliOptions) (pdfmill.Client, error) {
	options := []pdfmill.Option{
		pdfmill.WithBaseURL(opts.baseURL),
		pdfmill.WithTimeout(opts.timeout),
	}
	if secret := resolveWebhookSecret(opts); secret != "" {
		options = append(options, pdfmill.WithWebhookSecret(secret))
	}
	return pdfmill.NewClient(apiKey, options...)
}

func resolveAPIKey(opts *cliOptions) (string, error) {
	if opts.apiKey != "" {
		return opts.apiKey, nil
	}

	if env := os.Getenv("PDFMILL_API_KEY"); env != "" {
		opts.apiKey = env
		return env, nil
	}

	return "", errors.New("api key is required (flag --api-key or PDFMILL_API_KEY)")
}

func resolveWebhookSecret(opts *cliOptions) string {
	if opts.webhookSecret != "" {
		return opts.webhookSecret
	}

	if env := os.Getenv("PDFMILL_WEBHOOK_SECRET"); env != "" {
		opts.webhookSecret = env
	}

	return opts.webhookSecret
}

func defaultOutputName(urlStr, jobID string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return jobID + ".pdf"
	}

	ext := path.Ext(parsed.Path)
	if ext == "" {
		ext = ".pdf"
	}

	return jobID + ext
}

func printWithJob(cmd *cobra.Command, level string, jobID string, format string, args ...any) error {
	lvl := slog.LevelInfo
	if strings.ToLower(level) == "error" {
		lvl = slog.LevelError
	}
	return logWith(cmd, lvl, jobID, format, args...)
}

func logWith(cmd *cobra.Command, level slog.Level, jobID string, format string, args ...any) error {
	logger := newLogger(cmd.OutOrStdout(), level)
	msg := strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
	attrs := []slog.Attr{slog.Time("ts", time.Now())}
	if jobID != "" {
		attrs = append(attrs, slog.String("job-id", jobID))
	}
	logger.LogAttrs(cmd.Context(), level, msg, attrs...)
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(handler)
}
