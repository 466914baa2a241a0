package main

import (
	"time"

	"github.com/spf13/cobra"

	pdfmill "github.com/pdfmill/pdfmill-go"
)

type cliOptions struct {
	apiKey        string
	baseURL       string
	timeout       time.Duration
	webhookSecret string
	failLogPath   string
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:           "pdfmill",
		Short:         "PDFMill HTML/URL-to-PDF API CLI helper",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.apiKey, "api-key", "", "PDFMill API key (or set PDFMILL_API_KEY)")
	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", pdfmill.DefaultBaseURL, "Base URL for the PDFMill API")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", pdfmill.DefaultTimeout, "HTTP timeout for API requests")
	cmd.PersistentFlags().StringVar(&opts.webhookSecret, "webhook-secret", "", "Shared secret for webhook verification (or set PDFMILL_WEBHOOK_SECRET)")
	cmd.PersistentFlags().StringVar(&opts.failLogPath, "fail-log", "fail.log", "Path to write failed task logs")

	cmd.AddCommand(newConvertCmd(opts))
	cmd.AddCommand(newJobCmd(opts))
	cmd.AddCommand(newVerifyCmd(opts))
	cmd.AddCommand(newCompletionCmd())

	return cmd
}
