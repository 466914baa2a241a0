package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newVerifyCmd(opts *cliOptions) *cobra.Command {
	vo := &verifyOptions{
		opts: opts,
	}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a webhook delivery signature against its raw payload",
		RunE: func(cmd *cobra.Command, args []string) error {
			return vo.run(cmd)
		},
	}

	vo.addFlags(cmd)

	return cmd
}

type verifyOptions struct {
	payloadPath string
	signature   string
	opts        *cliOptions
}

func (o *verifyOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.payloadPath, "payload", "-", "Path to the raw payload file, or - for stdin")
	cmd.Flags().StringVar(&o.signature, "signature", "", "Signature header value (sha256=<hex>)")
}

func (o *verifyOptions) run(cmd *cobra.Command) error {
	if o.signature == "" {
		return errors.New("flag --signature is required")
	}

	payload, err := o.readPayload(cmd)
	if err != nil {
		return err
	}

	apiKey, err := resolveAPIKey(o.opts)
	if err != nil {
		return err
	}

	cli, err := buildClient(apiKey, o.opts)
	if err != nil {
		return err
	}

	event, err := cli.VerifyWebhook(payload, o.signature)
	if err != nil {
		if logErr := logFailure(o.opts.failLogPath, "", err); logErr != nil {
			return fmt.Errorf("%w; also failed to write fail log: %v", err, logErr)
		}
		return err
	}

	return printWithJob(cmd, "info", event.JobID, "Signature valid: status=%s url=%s\n", event.Status, event.DownloadURL)
}

func (o *verifyOptions) readPayload(cmd *cobra.Command) ([]byte, error) {
	if o.payloadPath == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read payload from stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(o.payloadPath)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return data, nil
}
