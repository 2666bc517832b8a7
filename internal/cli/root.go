package cli

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/actatek/configurator/internal/catalog"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "text" | "json" | "yaml"
	ConfigPath  string // optional settings file
	CatalogPath string // optional CUE catalog replacing the embedded one
	DBPath      string // default quote ledger, from settings

	cat *catalog.Catalog
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the actatek CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "actatek",
		Short: "ACTAtek device configurator",
		Long: `Configure an ACTAtek access control terminal step by step and derive
its part number.

Selections run through five steps (users, biometric, card, network,
features) followed by a summary. The part number is composed from the
selected option codes in a fixed order, e.g. AT-5K-FLI-SM-C.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := LoadSettings(cmd, opts.ConfigPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load settings", err)
			}
			settings.Apply(opts)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "settings file (yaml or json)")
	cmd.PersistentFlags().StringVar(&opts.CatalogPath, "catalog", "", "CUE catalog file replacing the built-in catalog")

	// Add subcommands
	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewComposeCommand(opts))
	cmd.AddCommand(NewWizardCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewQuotesCommand(opts))

	return cmd
}

// Catalog returns the catalog selected by --catalog, or the embedded one.
// The result is cached for the lifetime of the options.
func (o *RootOptions) Catalog() (*catalog.Catalog, error) {
	if o.cat != nil {
		return o.cat, nil
	}

	var (
		cat *catalog.Catalog
		err error
	)
	if o.CatalogPath == "" {
		cat, err = catalog.Default()
	} else {
		cat, err = catalog.Load(o.CatalogPath)
	}
	if err != nil {
		return nil, err
	}

	o.cat = cat
	return cat, nil
}

// Logger returns a text logger on w. Debug records are enabled by --verbose.
func (o *RootOptions) Logger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// catalogError reports a catalog load failure and converts it into a
// command error. Compile errors carry the offending field and line.
func catalogError(f *OutputFormatter, err error) error {
	var details any
	var cerr *catalog.CompileError
	if errors.As(err, &cerr) {
		d := map[string]any{"field": cerr.Field}
		if cerr.Pos.IsValid() {
			d["line"] = cerr.Pos.Line()
		}
		details = d
	}
	if outErr := f.Error(ErrCodeCatalog, err.Error(), details); outErr != nil {
		return outErr
	}
	return WrapExitError(ExitCommandError, "failed to load catalog", err)
}
