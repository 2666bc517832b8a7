// Package partnumber derives the ACTAtek part number from a configuration.
//
// The part number is the one external format of the configurator and is
// consumed by order processing, so its layout is fixed:
//
//	AT[-users][-biometric...][-card][-network...][-features...]
//
// Biometric and network codes appear in catalog order whatever the click
// order was. Feature codes appear in the order they were added. Empty codes
// (the sentinels) are omitted entirely.
package partnumber

import (
	"slices"
	"strings"

	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/config"
)

// Prefix is the product family tag every part number starts with.
const Prefix = "AT"

// Separator joins fragments.
const Separator = "-"

// Fragment is one code contributed by a selected option.
type Fragment struct {
	Group    catalog.Group `json:"group"`
	OptionID string        `json:"option_id"`
	Code     string        `json:"code"`
}

// Compose returns the part number for cfg.
func Compose(cfg config.Configuration, cat *catalog.Catalog) string {
	parts := []string{Prefix}
	for _, f := range Fragments(cfg, cat) {
		parts = append(parts, f.Code)
	}
	return strings.Join(parts, Separator)
}

// Fragments returns the non-empty codes of cfg in part number order,
// excluding the prefix.
func Fragments(cfg config.Configuration, cat *catalog.Catalog) []Fragment {
	var out []Fragment
	add := func(g catalog.Group, opts ...catalog.Option) {
		for _, o := range opts {
			if o.Code == "" {
				continue
			}
			out = append(out, Fragment{Group: g, OptionID: o.ID, Code: o.Code})
		}
	}

	if cfg.Users != nil {
		add(catalog.GroupUsers, *cfg.Users)
	}
	add(catalog.GroupBiometric, Canonical(cat, catalog.GroupBiometric, cfg.Biometric)...)
	if cfg.Card != nil {
		add(catalog.GroupCard, *cfg.Card)
	}
	add(catalog.GroupNetwork, Canonical(cat, catalog.GroupNetwork, cfg.Network)...)
	add(catalog.GroupFeatures, cfg.Features...)
	return out
}

// Canonical returns a copy of opts stably sorted by catalog position in g.
// Options missing from the catalog sort after all known ones.
func Canonical(cat *catalog.Catalog, g catalog.Group, opts []catalog.Option) []catalog.Option {
	sorted := slices.Clone(opts)
	rank := func(o catalog.Option) int {
		if p := cat.Position(g, o.ID); p >= 0 {
			return p
		}
		return len(cat.Options(g))
	}
	slices.SortStableFunc(sorted, func(a, b catalog.Option) int {
		return rank(a) - rank(b)
	})
	return sorted
}

// Normalize returns cfg with its unordered groups in catalog order.
// Two configurations that differ only in biometric or network click order
// normalize to the same value.
func Normalize(cfg config.Configuration, cat *catalog.Catalog) config.Configuration {
	out := cfg.Clone()
	out.Biometric = Canonical(cat, catalog.GroupBiometric, out.Biometric)
	out.Network = Canonical(cat, catalog.GroupNetwork, out.Network)
	return out
}
