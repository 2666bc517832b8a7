package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/sequencer"
	"github.com/actatek/configurator/internal/session"
	"github.com/actatek/configurator/internal/summary"
	"github.com/actatek/configurator/internal/terminal"
)

// WizardOptions holds flags for the wizard command.
type WizardOptions struct {
	*RootOptions
	DB string
}

// WizardResult is the structured output written when the wizard exits.
type WizardResult struct {
	PartNumber string          `json:"part_number" yaml:"part_number"`
	Step       string          `json:"step" yaml:"step"`
	Quotes     []session.Quote `json:"quotes" yaml:"quotes"`
}

// NewWizardCommand creates the wizard command.
func NewWizardCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WizardOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Configure a device step by step",
		Long: `Walk through the configuration steps interactively.

Enter an option number to select it (or toggle it on multi-select steps),
n for the next step, b to go back, r to start over and q to quit. The next
step stays locked until the current one has a selection.

With --format json or yaml, prompts go to stderr and the final state is
written to stdout on exit.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "quote ledger to record issued quotes in")

	return cmd
}

// wizard drives one interactive session.
type wizard struct {
	opts    *WizardOptions
	cmd     *cobra.Command
	cat     *catalog.Catalog
	session *session.Session
	prompt  *terminal.Prompter
	quotes  []session.Quote
}

func runWizard(opts *WizardOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	cat, err := opts.Catalog()
	if err != nil {
		return catalogError(f, err)
	}

	promptOut := cmd.OutOrStdout()
	if f.Structured() {
		promptOut = cmd.ErrOrStderr()
	}
	if in, ok := cmd.InOrStdin().(*os.File); ok && !terminal.IsTerminal(in) {
		f.VerboseLog("stdin is not a terminal, reading answers line by line")
	}

	w := &wizard{
		opts:    opts,
		cmd:     cmd,
		cat:     cat,
		session: session.New(cat, session.WithLogger(opts.Logger(cmd.ErrOrStderr()))),
		prompt:  terminal.NewPrompter(cmd.InOrStdin(), promptOut),
		quotes:  []session.Quote{},
	}

	if err := w.loop(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return err
		}
		return WrapExitError(ExitFailure, "wizard aborted", err)
	}

	if f.Structured() {
		return f.Success(WizardResult{
			PartNumber: w.session.PartNumber(),
			Step:       w.session.Step().Name(),
			Quotes:     w.quotes,
		})
	}
	return nil
}

func (w *wizard) dbPath() string {
	if w.opts.DB != "" {
		return w.opts.DB
	}
	return w.opts.DBPath
}

// loop runs until the user quits or input ends.
func (w *wizard) loop() error {
	for {
		var (
			done bool
			err  error
		)
		if w.session.Step() == sequencer.StepSummary {
			done, err = w.summaryStep()
		} else {
			done, err = w.selectionStep()
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil || done {
			return err
		}
	}
}

func (w *wizard) rule() string {
	width := 60
	if out, ok := w.prompt.Out().(*os.File); ok {
		width = min(terminal.Width(out, width), width)
	}
	return strings.Repeat("-", width)
}

func (w *wizard) header() {
	step := w.session.Step()
	info := step.Info()
	w.prompt.Printf("\n%s\n", w.rule())
	w.prompt.Printf("Step %d/%d: %s - %s\n", int(step)+1, len(sequencer.Steps), info.Title, info.Subtitle)
	w.prompt.Printf("Part Number: %s\n\n", w.session.PartNumber())
}

// choices lists the options of the current step in display order. Card
// options are shown single technology first, then multi-card support.
func (w *wizard) choices(g catalog.Group) []catalog.Option {
	if g == catalog.GroupCard {
		return append(w.cat.ByCategory(catalog.CategorySingle), w.cat.ByCategory(catalog.CategoryMulti)...)
	}
	return w.cat.Options(g)
}

func (w *wizard) selectionStep() (bool, error) {
	step := w.session.Step()
	g, _ := step.Group()
	cfg := w.session.Configuration()
	options := w.choices(g)

	w.header()
	var category catalog.Category
	for i, opt := range options {
		if opt.Category != category {
			category = opt.Category
			w.prompt.Printf("  %s\n", categoryTitle(category))
		}
		mark := " "
		if cfg.Selected(g, opt) {
			mark = "x"
		}
		code := opt.Code
		if code == "" {
			code = "-"
		}
		w.prompt.Printf("  %2d. [%s] %-40s %s\n", i+1, mark, opt.Label, code)
	}

	input, err := w.prompt.ReadLine("\nSelect [1-" + strconv.Itoa(len(options)) + "], n=next, b=back, r=reset, q=quit: ")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(input) {
	case "":
		return false, nil
	case "n", "next":
		if !w.session.CanAdvance() {
			w.prompt.Printf("Make a selection to continue.\n")
			return false, nil
		}
		w.session.Advance()
		return false, nil
	case "b", "back":
		if !w.session.Retreat() {
			w.prompt.Printf("Already at the first step.\n")
		}
		return false, nil
	case "r", "reset":
		return false, w.confirmReset()
	case "q", "quit":
		return true, nil
	}

	num, err := strconv.Atoi(input)
	if err != nil || num < 1 || num > len(options) {
		w.prompt.Printf("Please enter a number between 1 and %d or a command.\n", len(options))
		return false, nil
	}

	name, _ := session.SelectAction(g)
	if _, err := w.session.Apply(session.Action{Name: name, Option: options[num-1].ID}); err != nil {
		return false, err
	}
	return false, nil
}

func categoryTitle(c catalog.Category) string {
	switch c {
	case catalog.CategorySingle:
		return "Single Technology"
	case catalog.CategoryMulti:
		return "Multi-Card Support"
	}
	return ""
}

func (w *wizard) confirmReset() error {
	ok, err := w.prompt.Confirm("Clear all selections and start over?", false)
	if err != nil {
		return err
	}
	if ok {
		w.session.Reset()
	}
	return nil
}

const (
	summaryQuote = iota
	summaryBack
	summaryReset
	summaryExit
)

func (w *wizard) summaryStep() (bool, error) {
	w.header()
	if err := summary.WriteText(w.prompt.Out(), summary.Build(w.session.Configuration(), w.cat)); err != nil {
		return false, err
	}
	w.prompt.Printf("\n")

	choice, err := w.prompt.Choice("What next?", []string{"Get quote", "Back", "Start over", "Exit"}, summaryExit)
	if err != nil {
		return false, err
	}

	switch choice {
	case summaryQuote:
		return false, w.issueQuote()
	case summaryBack:
		w.session.Retreat()
	case summaryReset:
		return false, w.confirmReset()
	case summaryExit:
		return true, nil
	}
	return false, nil
}

func (w *wizard) issueQuote() error {
	q, err := w.session.Quote()
	if err != nil {
		return err
	}
	w.quotes = append(w.quotes, q)
	w.prompt.Printf("\nQuote Ref: %s\nPart Number: %s\n", q.Ref, q.PartNumber)

	if path := w.dbPath(); path != "" {
		if err := recordQuote(w.cmd, path, q); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to record quote in %s", path), err)
		}
		w.prompt.Printf("Recorded in %s\n", path)
	}
	return nil
}
