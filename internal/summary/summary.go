// Package summary projects a configuration into the read-only summary shown
// on the final step.
package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/config"
	"github.com/actatek/configurator/internal/partnumber"
)

// Placeholder is shown for an unset single selection.
const Placeholder = "-"

// Item is one summary row.
type Item struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
	Code  string `json:"code" yaml:"code"`
}

// View is the rendered summary.
type View struct {
	PartNumber string   `json:"part_number" yaml:"part_number"`
	Items      []Item   `json:"items" yaml:"items"`
	Features   []string `json:"features" yaml:"features"`
}

// Build derives the summary view of cfg.
func Build(cfg config.Configuration, cat *catalog.Catalog) View {
	cfg = partnumber.Normalize(cfg, cat)

	v := View{
		PartNumber: partnumber.Compose(cfg, cat),
		Items: []Item{
			single("User Capacity", cfg.Users),
			biometric(cfg.Biometric),
			single("Card Technology", cfg.Card),
			network(cfg.Network),
		},
		Features: []string{},
	}
	for _, f := range cfg.Features {
		v.Features = append(v.Features, fmt.Sprintf("%s (%s)", f.Label, f.Code))
	}
	return v
}

func single(label string, opt *catalog.Option) Item {
	if opt == nil {
		return Item{Label: label, Value: Placeholder, Code: Placeholder}
	}
	return Item{Label: label, Value: opt.Label, Code: opt.Code}
}

func biometric(opts []catalog.Option) Item {
	if len(opts) == 0 {
		return Item{Label: "Biometric", Value: Placeholder, Code: Placeholder}
	}
	labels := make([]string, len(opts))
	codes := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
		codes[i] = o.Code
		if o.Code == "" {
			codes[i] = "None"
		}
	}
	return Item{Label: "Biometric", Value: strings.Join(labels, " + "), Code: strings.Join(codes, "-")}
}

func network(opts []catalog.Option) Item {
	if len(opts) == 0 {
		return Item{Label: "Network", Value: "LAN", Code: "Default"}
	}
	labels := make([]string, len(opts))
	codes := make([]string, len(opts))
	for i, o := range opts {
		labels[i] = o.Label
		codes[i] = o.Code
	}
	return Item{Label: "Network", Value: strings.Join(labels, " + "), Code: strings.Join(codes, "-")}
}

// WriteText renders v as plain text.
func WriteText(w io.Writer, v View) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Part Number: %s\n", v.PartNumber)
	for _, it := range v.Items {
		fmt.Fprintf(&b, "\n%s\n  %s\n  Code: %s\n", it.Label, it.Value, it.Code)
	}
	b.WriteString("\nOptional Features\n")
	if len(v.Features) == 0 {
		b.WriteString("  None selected\n")
	}
	for _, f := range v.Features {
		fmt.Fprintf(&b, "  %s\n", f)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
