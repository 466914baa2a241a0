package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	pdfmill "github.com/pdfmill/pdfmill-go"
)

func newConvertCmd(opts *cliOptions) *cobra.Command {
	co := &convertOptions{
		opts: opts,
	}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Submit an HTML document, URL, or file for PDF conversion",
		RunE: func(cmd *cobra.Command, args []string) error {
			return co.run(cmd)
		},
	}

	co.addFlags(cmd)

	return cmd
}

type convertOptions struct {
	html        string
	sourceURL   string
	filePath    string
	optionsJSON string
	webhookURL  string
	output      string
	interval    time.Duration
	waitTimeout time.Duration
	opts        *cliOptions
	pdfOptions  map[string]any
}

func (o *convertOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.html, "html", "", "Inline HTML markup to convert")
	cmd.Flags().StringVar(&o.sourceURL, "url", "", "Public URL to convert")
	cmd.Flags().StringVar(&o.filePath, "file", "", "Local HTML file to convert")
	cmd.Flags().StringVar(&o.optionsJSON, "options", "", "Renderer options as a JSON object, passed through unmodified")
	cmd.Flags().StringVar(&o.webhookURL, "webhook-url", "", "Webhook endpoint notified on completion (skips polling)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Write the PDF to this path instead of stdout summary")
	cmd.Flags().DurationVar(&o.interval, "interval", pdfmill.DefaultPollInterval, "Polling interval for job status")
	cmd.Flags().DurationVar(&o.waitTimeout, "wait-timeout", pdfmill.ConvertWaitTimeout, "Maximum time to wait for completion")
}

func (o *convertOptions) complete() error {
	sources := 0
	for _, s := range []string{o.html, o.sourceURL, o.filePath} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return errors.New("exactly one of --html, --url or --file is required")
	}

	if o.optionsJSON != "" {
		if err := json.Unmarshal([]byte(o.optionsJSON), &o.pdfOptions); err != nil {
			return fmt.Errorf("parse --options: %w", err)
		}
	}

	if o.interval <= 0 {
		o.interval = pdfmill.DefaultPollInterval
	}

	return nil
}

func (o *convertOptions) run(cmd *cobra.Command) error {
	if err := o.complete(); err != nil {
		if logErr := logFailure(o.opts.failLogPath, "", err); logErr != nil {
			return fmt.Errorf("%w; also failed to write fail log: %v", err, logErr)
		}
		return err
	}

	apiKey, err := resolveAPIKey(o.opts)
	if err != nil {
		if logErr := logFailure(o.opts.failLogPath, "", err); logErr != nil {
			return fmt.Errorf("%w; also failed to write fail log: %v", err, logErr)
		}
		return err
	}

	cli, err := buildClient(apiKey, o.opts)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	req := pdfmill.ConvertRequest{
		HTML:         o.html,
		URL:          o.sourceURL,
		FilePath:     o.filePath,
		PDFOptions:   o.pdfOptions,
		WebhookURL:   o.webhookURL,
		PollInterval: o.interval,
		Timeout:      o.waitTimeout,
		SaveTo:       o.output,
	}

	result, err := cli.Convert(ctx, req)
	if err != nil {
		if logErr := logFailure(o.opts.failLogPath, "", err); logErr != nil {
			return fmt.Errorf("%w; also failed to write fail log: %v", err, logErr)
		}
		return err
	}

	switch {
	case o.webhookURL != "":
		return printWithJob(cmd, "info", result.JobID, "Job submitted; completion will be delivered to %s\n", o.webhookURL)
	case result.Path != "":
		return printWithJob(cmd, "info", result.JobID, "Saved PDF to %s\n", result.Path)
	default:
		return printWithJob(cmd, "info", result.JobID, "Converted %d bytes (use --output to save to disk)\n", len(result.Data))
	}
}
