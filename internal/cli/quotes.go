package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/actatek/configurator/internal/store"
)

// QuotesOptions holds flags for the quotes command.
type QuotesOptions struct {
	*RootOptions
	DB          string
	Ref         string
	Fingerprint string
}

// NewQuotesCommand creates the quotes command.
func NewQuotesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QuotesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "quotes",
		Short: "List issued quotes",
		Long: `List the quotes recorded in a quote ledger, oldest first.

Examples:
  actatek quotes --db quotes.db
  actatek quotes --db quotes.db --ref 01920000-0000-7000-8000-000000000001
  actatek quotes --db quotes.db --fingerprint 3f2a... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuotes(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "quote ledger path")
	cmd.Flags().StringVar(&opts.Ref, "ref", "", "show the quote with this reference")
	cmd.Flags().StringVar(&opts.Fingerprint, "fingerprint", "", "list quotes for this configuration fingerprint")

	return cmd
}

func runQuotes(opts *QuotesOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	path := opts.DB
	if path == "" {
		path = opts.DBPath
	}
	if path == "" {
		return NewExitError(ExitCommandError, "no quote ledger: pass --db or set db in settings")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if outErr := f.Error(ErrCodeNotFound, fmt.Sprintf("quote ledger not found: %s", path), nil); outErr != nil {
			return outErr
		}
		return NewExitError(ExitCommandError, fmt.Sprintf("quote ledger not found: %s", path))
	}

	st, err := store.Open(path)
	if err != nil {
		return storeError(f, path, err)
	}
	defer st.Close()

	ctx := cmd.Context()
	var records []store.Record
	switch {
	case opts.Ref != "":
		rec, err := st.GetQuote(ctx, opts.Ref)
		if errors.Is(err, store.ErrQuoteNotFound) {
			if outErr := f.Error(ErrCodeNotFound, err.Error(), map[string]any{"ref": opts.Ref}); outErr != nil {
				return outErr
			}
			return WrapExitError(ExitFailure, "quote not found", err)
		}
		if err != nil {
			return storeError(f, path, err)
		}
		records = []store.Record{rec}
	case opts.Fingerprint != "":
		records, err = st.FindByFingerprint(ctx, opts.Fingerprint)
	default:
		records, err = st.ListQuotes(ctx)
	}
	if err != nil {
		return storeError(f, path, err)
	}
	f.VerboseLog("Read %d quote(s) from %s", len(records), path)

	if f.Structured() {
		return f.Success(records)
	}

	w := f.Writer
	if len(records) == 0 {
		fmt.Fprintln(w, "No quotes recorded.")
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(w, "%s  %-32s  %s\n", r.CreatedAt.UTC().Format(time.RFC3339), r.PartNumber, r.Ref)
	}
	return nil
}

func storeError(f *OutputFormatter, path string, err error) error {
	if outErr := f.Error(ErrCodeStore, err.Error(), map[string]any{"db": path}); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, "quote ledger failure", err)
}
