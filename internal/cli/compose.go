package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/sequencer"
	"github.com/actatek/configurator/internal/session"
	"github.com/actatek/configurator/internal/store"
	"github.com/actatek/configurator/internal/summary"
)

// ComposeOptions holds flags for the compose command.
type ComposeOptions struct {
	*RootOptions
	Users     string
	Biometric []string
	Card      string
	Network   []string
	Features  []string
	Summary   bool
	Quote     bool
	DB        string
}

// ComposeResult is the structured output of compose.
type ComposeResult struct {
	PartNumber string         `json:"part_number" yaml:"part_number"`
	Step       string         `json:"step" yaml:"step"`
	Complete   bool           `json:"complete" yaml:"complete"`
	Summary    *summary.View  `json:"summary,omitempty" yaml:"summary,omitempty"`
	Quote      *session.Quote `json:"quote,omitempty" yaml:"quote,omitempty"`
	Stored     bool           `json:"stored,omitempty" yaml:"stored,omitempty"`
}

// NewComposeCommand creates the compose command.
func NewComposeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ComposeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Derive a part number from selections",
		Long: `Run selections through a configuration session and print the part number.

Groups are applied in step order and the session advances after each one,
so the result reports the first step still missing a selection. Repeated
--biometric, --network and --feature flags toggle options in the order given.

Examples:
  actatek compose --users 5k --biometric finger --card sm --feature camera
  actatek compose --users 3k --biometric none --card sta --summary
  actatek compose --users 1k --biometric face --card se --quote --db quotes.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompose(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Users, "users", "", "user capacity option id")
	cmd.Flags().StringArrayVar(&opts.Biometric, "biometric", nil, "biometric option id (repeatable)")
	cmd.Flags().StringVar(&opts.Card, "card", "", "card technology option id")
	cmd.Flags().StringArrayVar(&opts.Network, "network", nil, "network option id (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Features, "feature", nil, "optional feature id (repeatable)")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "print the full summary")
	cmd.Flags().BoolVar(&opts.Quote, "quote", false, "issue a quote for the finished configuration")
	cmd.Flags().StringVar(&opts.DB, "db", "", "quote ledger to record the issued quote in")

	return cmd
}

// actions converts the flags into session actions, group by group in step
// order, each group followed by an advance.
func (o *ComposeOptions) actions() []session.Action {
	var out []session.Action
	add := func(name session.ActionName, ids ...string) {
		for _, id := range ids {
			if id != "" {
				out = append(out, session.Action{Name: name, Option: id})
			}
		}
		out = append(out, session.Action{Name: session.ActionAdvance})
	}

	add(session.ActionSetUsers, o.Users)
	add(session.ActionToggleBiometric, o.Biometric...)
	add(session.ActionSetCard, o.Card)
	add(session.ActionToggleNetwork, o.Network...)
	add(session.ActionToggleFeature, o.Features...)
	return out
}

func (o *ComposeOptions) dbPath() string {
	if o.DB != "" {
		return o.DB
	}
	return o.DBPath
}

func runCompose(opts *ComposeOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	cat, err := opts.Catalog()
	if err != nil {
		return catalogError(f, err)
	}

	s, err := session.Replay(cat, opts.actions(), session.WithLogger(opts.Logger(cmd.ErrOrStderr())))
	if err != nil {
		return selectionError(f, cat, err)
	}

	result := ComposeResult{
		PartNumber: s.PartNumber(),
		Step:       s.Step().Name(),
		Complete:   s.Step() == sequencer.StepSummary,
	}
	f.VerboseLog("Applied %d actions, stopped at %s", len(s.Trace()), s.Step())

	if opts.Summary {
		v := summary.Build(s.Configuration(), cat)
		result.Summary = &v
	}

	if opts.Quote {
		q, err := s.Quote()
		if err != nil {
			if errors.Is(err, session.ErrNotAtSummary) {
				msg := fmt.Sprintf("configuration is incomplete: step %s needs a selection", s.Step())
				if outErr := f.Error(ErrCodeIncomplete, msg, map[string]any{"step": s.Step().Name()}); outErr != nil {
					return outErr
				}
				return WrapExitError(ExitFailure, "quote not available", err)
			}
			return err
		}
		result.Quote = &q

		if path := opts.dbPath(); path != "" {
			if err := recordQuote(cmd, path, q); err != nil {
				if outErr := f.Error(ErrCodeStore, err.Error(), map[string]any{"db": path}); outErr != nil {
					return outErr
				}
				return WrapExitError(ExitCommandError, "failed to record quote", err)
			}
			result.Stored = true
			f.VerboseLog("Recorded quote %s in %s", q.Ref, path)
		}
	}

	if f.Structured() {
		return f.Success(result)
	}
	return writeComposeText(f, result)
}

func recordQuote(cmd *cobra.Command, path string, q session.Quote) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.WriteQuote(cmd.Context(), q)
}

// selectionError reports a rejected action. Unknown options list the ids the
// group accepts.
func selectionError(f *OutputFormatter, cat *catalog.Catalog, err error) error {
	details := map[string]any{}
	var aerr *session.ActionError
	if errors.As(err, &aerr) {
		details["action"] = string(aerr.Action)
		if aerr.Option != "" {
			details["option"] = aerr.Option
		}
		if g, ok := aerr.Action.Group(); ok && session.IsUnknownOption(err) {
			ids := []string{}
			for _, o := range cat.Options(g) {
				ids = append(ids, o.ID)
			}
			details["valid"] = ids
		}
	}
	if outErr := f.Error(ErrCodeSelection, err.Error(), details); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitFailure, "selection rejected", err)
}

func writeComposeText(f *OutputFormatter, r ComposeResult) error {
	w := f.Writer
	if r.Summary != nil {
		if err := summary.WriteText(w, *r.Summary); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(w, "Part Number: %s\n", r.PartNumber)
	}
	if !r.Complete {
		step, _ := sequencer.ParseStep(r.Step)
		fmt.Fprintf(w, "Incomplete: %s step needs a selection\n", step)
	}
	if r.Quote != nil {
		fmt.Fprintf(w, "Quote Ref: %s\n", r.Quote.Ref)
		fmt.Fprintf(w, "Fingerprint: %s\n", r.Quote.Fingerprint)
		if r.Stored {
			fmt.Fprintln(w, "Recorded in quote ledger")
		}
	}
	return nil
}
