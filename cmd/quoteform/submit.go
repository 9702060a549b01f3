package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"freightquote/internal/app"
	"freightquote/internal/app/config"
	"freightquote/internal/domain/quote"
	"freightquote/internal/domain/quote/pdf/remote"
	"freightquote/internal/domain/quote/workflow"
	"freightquote/internal/infra/ratesheet"
)

var errInvalidQuote = errors.New("quote has missing required fields")

type submitOptions struct {
	draft    string
	rates    string
	out      string
	endpoint string
	timeout  time.Duration
	yes      bool
}

func newSubmitCmd() *cobra.Command {
	var opts submitOptions
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a saved draft and download quote.pdf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if opts.out == "" {
				opts.out = cfg.DownloadDir
			}
			if opts.endpoint == "" {
				opts.endpoint = cfg.QuotesEndpoint
			}
			if opts.timeout <= 0 {
				opts.timeout = cfg.SubmitTimeout
			}
			logger, err := app.NewLogger(cfg.AppEnv, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			cmd.SetContext(ctx)
			return runSubmit(cmd, opts, logger)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.draft, "draft", "", "draft quote JSON file")
	f.StringVar(&opts.rates, "rates", "", "Excel rate sheet replacing the draft's line items")
	f.StringVar(&opts.out, "out", "", "directory for quote.pdf (default DOWNLOAD_DIR)")
	f.StringVar(&opts.endpoint, "endpoint", "", "PDF endpoint (default QUOTES_ENDPOINT)")
	f.DurationVar(&opts.timeout, "timeout", 0, "PDF request timeout (default SUBMIT_TIMEOUT)")
	f.BoolVarP(&opts.yes, "yes", "y", false, "accept the confirmation without asking")
	_ = cmd.MarkFlagRequired("draft")
	return cmd
}

func runSubmit(cmd *cobra.Command, opts submitOptions, logger *zap.Logger) error {
	d, err := loadDraft(opts.draft)
	if err != nil {
		return err
	}
	form := quote.NewForm()
	if err := d.apply(form); err != nil {
		return err
	}
	if opts.rates != "" {
		items, err := ratesheet.Read(opts.rates)
		if err != nil {
			return err
		}
		form.ReplaceItems(items)
	}

	out := cmd.OutOrStdout()
	if err := printSummary(out, form); err != nil {
		return err
	}

	gen := remote.New(opts.endpoint, &http.Client{}, logger)
	wf := workflow.New(form, gen,
		workflow.WithLogger(logger),
		workflow.WithTimeout(opts.timeout))
	ui := newTerminalUI(cmd.InOrStdin(), out, opts.out, opts.yes)

	outcome, err := wf.Submit(cmd.Context(), ui)
	switch outcome {
	case workflow.OutcomeSucceeded:
		fmt.Fprintf(out, "Saved %s\n", ui.savedTo)
		return nil
	case workflow.OutcomeInvalid:
		for _, fe := range form.Snapshot().Errors {
			fmt.Fprintf(out, "  %s: %s\n", fe.Field, fe.Message)
		}
		return errInvalidQuote
	case workflow.OutcomeFailed:
		return err
	}
	return nil
}

func printSummary(w io.Writer, f *quote.Form) error {
	fields := f.Fields()
	fmt.Fprintf(w, "Quote %s for %s, %s -> %s\n\n", fields.CustomerID, fields.Customer, fields.From, fields.To)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tDescription\tQuantity\tPrice\tTotal\t")
	for i, it := range f.Items() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", i+1, it.Description,
			quote.FormatMoney(it.Quantity), quote.FormatMoney(it.Price), quote.FormatMoney(it.Total))
	}
	fmt.Fprintf(tw, "\t\t\tGrand total\t%s\t\n", quote.FormatMoney(f.GrandTotal()))
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}
