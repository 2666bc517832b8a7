package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/sequencer"
)

// CatalogGroup is one group in catalog command output.
type CatalogGroup struct {
	Group   catalog.Group    `json:"group" yaml:"group"`
	Title   string           `json:"title" yaml:"title"`
	Options []catalog.Option `json:"options" yaml:"options"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog [group]",
		Short: "List selectable options",
		Long: `List the options of every group, or of one group.

Groups: users, biometric, card, network, features.

Examples:
  actatek catalog
  actatek catalog card
  actatek catalog --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runCatalog(opts *RootOptions, args []string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	groups := catalog.Groups
	if len(args) == 1 {
		g, err := catalog.ParseGroup(args[0])
		if err != nil {
			if outErr := f.Error(ErrCodeNotFound, err.Error(), nil); outErr != nil {
				return outErr
			}
			return WrapExitError(ExitCommandError, "unknown group", err)
		}
		groups = []catalog.Group{g}
	}

	cat, err := opts.Catalog()
	if err != nil {
		return catalogError(f, err)
	}
	f.VerboseLog("Catalog: %s", catalogSource(opts))

	out := make([]CatalogGroup, 0, len(groups))
	for _, g := range groups {
		out = append(out, CatalogGroup{Group: g, Title: groupTitle(g), Options: cat.Options(g)})
	}

	if f.Structured() {
		return f.Success(out)
	}
	writeCatalogText(f.Writer, out)
	return nil
}

func catalogSource(opts *RootOptions) string {
	if opts.CatalogPath == "" {
		return "built-in"
	}
	return opts.CatalogPath
}

// groupTitle is the title of the step that edits g.
func groupTitle(g catalog.Group) string {
	for _, s := range sequencer.Steps {
		if sg, ok := s.Group(); ok && sg == g {
			return s.Info().Title
		}
	}
	return string(g)
}

func writeCatalogText(w io.Writer, groups []CatalogGroup) {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)\n", g.Title, g.Group)
		for _, o := range g.Options {
			code := o.Code
			if code == "" {
				code = "-"
			}
			line := fmt.Sprintf("  %-8s %-7s %s", o.ID, code, o.Label)
			switch {
			case o.Category != catalog.CategoryNone:
				line += fmt.Sprintf(" [%s]", o.Category)
			case o.Sentinel:
				line += " [default]"
			}
			fmt.Fprintln(w, line)
		}
	}
}
