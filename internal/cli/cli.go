package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"receipt_check/internal/batch"
	"receipt_check/internal/config"
	"receipt_check/internal/fns"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type Runner struct {
	options Options
	logger  *zap.Logger
	client  *fns.Client
}

func NewRunner(cfg config.Config, logger *zap.Logger, client *fns.Client) *Runner {
	return &Runner{
		options: Options{
			BaseURL:     cfg.BaseURL,
			Timeout:     cfg.Timeout,
			Concurrency: cfg.Concurrency,
			BatchFile:   cfg.BatchFile,
			Format:      cfg.Format,
		},
		logger: logger.Named("cli"),
		client: client,
	}
}

func (r *Runner) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return r.command(os.Stdout).ExecuteContext(ctx)
}

func (r *Runner) command(stdout io.Writer) *cobra.Command {
	opts := r.options

	root := &cobra.Command{
		Use:   "receipt-check [batch-file]",
		Short: "Verify fiscal receipts against the FNS lookup service",
		Long: `Look up fiscal receipts by the values printed in their QR code.

Each line of the batch file holds five whitespace-separated fields:
  phone password fn i fp
Blank lines and lines starting with '#' are ignored.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.BatchFile = args[0]
			}
			lines, err := readBatchFile(opts.BatchFile)
			if err != nil {
				return err
			}
			return r.run(cmd, &opts, lines, stdout)
		},
	}

	lookup := &cobra.Command{
		Use:   "lookup <phone> <password> <fn> <i> <fp>",
		Short: "Look up a single receipt",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			params, err := batch.ParseLine(text)
			if err != nil {
				return err
			}
			return r.run(cmd, &opts, []batch.Line{{Number: 1, Text: text, Params: params}}, stdout)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.Format, "format", opts.Format, "Output format: text, json or yaml (FORMAT)")
	flags.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "Per-lookup timeout (TIMEOUT)")
	flags.IntVar(&opts.Concurrency, "concurrency", opts.Concurrency, "Max lookups in flight, 0 for unlimited (CONCURRENCY)")
	flags.StringVar(&opts.BaseURL, "base-url", opts.BaseURL, "Lookup service base URL (BASE_URL)")

	root.AddCommand(lookup)
	return root
}

func (r *Runner) run(cmd *cobra.Command, opts *Options, lines []batch.Line, stdout io.Writer) error {
	out, err := newWriter(opts.Format, stdout)
	if err != nil {
		return err
	}

	client := r.client
	if cmd.Flags().Changed("base-url") || cmd.Flags().Changed("timeout") {
		client = fns.NewClient(config.Config{BaseURL: opts.BaseURL, Timeout: opts.Timeout}, r.logger)
		defer client.Close()
	}

	r.logger.Info("batch started",
		zap.Int("lines", len(lines)),
		zap.String("format", opts.Format),
		zap.Int("concurrency", opts.Concurrency),
	)

	runner := batch.NewRunner(client, opts.Concurrency, r.logger)
	if err := runner.Run(cmd.Context(), lines, out.write); err != nil {
		return err
	}
	return out.flush()
}

func readBatchFile(path string) ([]batch.Line, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch file: %w", err)
	}
	defer file.Close()

	return batch.Read(file)
}
