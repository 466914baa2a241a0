package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	pdfmill "github.com/pdfmill/pdfmill-go"
)

func newJobCmd(opts *cliOptions) *cobra.Command {
	jo := &jobOptions{
		opts: opts,
	}

	cmd := &cobra.Command{
		Use:               "job <job-id>",
		Short:             "Inspect a conversion job, optionally waiting for its result",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: positionalAlwaysFlags,
		RunE: func(cmd *cobra.Command, args []string) error {
			jo.jobID = args[0]
			return jo.run(cmd)
		},
	}

	jo.addFlags(cmd)

	return cmd
}

type jobOptions struct {
	jobID       string
	wait        bool
	download    bool
	output      string
	interval    time.Duration
	waitTimeout time.Duration
	opts        *cliOptions
}

func (o *jobOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.wait, "wait", false, "Poll until the job reaches a terminal state")
	cmd.Flags().BoolVar(&o.download, "download", false, "Download the PDF when the job is complete (implies --wait)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Download path (used when --download is set)")
	cmd.Flags().DurationVar(&o.interval, "interval", pdfmill.DefaultPollInterval, "Polling interval for job status")
	cmd.Flags().DurationVar(&o.waitTimeout, "wait-timeout", pdfmill.JobWaitTimeout, "Maximum time to wait for completion")
}

func (o *jobOptions) run(cmd *cobra.Command) error {
	apiKey, err := resolveAPIKey(o.opts)
	if err != nil {
		if logErr := logFailure(o.opts.failLogPath, o.jobID, err); logErr != nil {
			return fmt.Errorf("%w; also failed to write fail log: %v", err, logErr)
		}
		return err
	}

	cli, err := buildClient(apiKey, o.opts)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if !o.wait && !o.download {
		job, err := cli.GetJob(ctx, o.jobID)
		if err != nil {
			if logErr := logFailure(o.opts.failLogPath, o.jobID, err); logErr != nil {
				return fmt.Errorf("%w; also failed to write fail log: %v", err, logErr)
			}
			return err
		}

		if job.Status == pdfmill.JobStatusFailed {
			return printWithJob(cmd, "error", job.JobID, "Job failed: %s\n", job.ErrorMessage)
		}
		return printWithJob(cmd, "info", job.JobID, "Job status %s url=%s\n", job.Status, job.DownloadURL)
	}

	waitOpts := pdfmill.WaitOptions{
		PollInterval: o.interval,
		Timeout:      o.waitTimeout,
	}
	if o.download {
		outPath := o.output
		if outPath == "" {
			outPath = defaultOutputName("", o.jobID)
		}
		waitOpts.SaveTo = outPath
	}

	result, err := cli.WaitForJob(ctx, o.jobID, waitOpts)
	if err != nil {
		if logErr := logFailure(o.opts.failLogPath, o.jobID, err); logErr != nil {
			return fmt.Errorf("%w; also failed to write fail log: %v", err, logErr)
		}
		return err
	}

	if result.Path != "" {
		return printWithJob(cmd, "info", result.JobID, "Saved PDF to %s\n", result.Path)
	}
	return printWithJob(cmd, "info", result.JobID, "Job completed (%d bytes)\n", len(result.Data))
}
