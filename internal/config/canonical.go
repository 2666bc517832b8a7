package config

import (
	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/ir"
)

// CanonicalMap converts c into the value shapes accepted by
// ir.MarshalCanonical. Unset single groups are omitted; set groups keep
// their storage order.
func (c Configuration) CanonicalMap() map[string]any {
	m := map[string]any{
		string(catalog.GroupBiometric): optionList(c.Biometric),
		string(catalog.GroupNetwork):   optionList(c.Network),
		string(catalog.GroupFeatures):  optionList(c.Features),
	}
	if c.Users != nil {
		m[string(catalog.GroupUsers)] = optionEntry(*c.Users)
	}
	if c.Card != nil {
		m[string(catalog.GroupCard)] = optionEntry(*c.Card)
	}
	return m
}

// Fingerprint is the content hash of c's structure.
func (c Configuration) Fingerprint() string {
	return ir.MustFingerprint(ir.DomainConfiguration, c.CanonicalMap())
}

func optionEntry(o catalog.Option) map[string]any {
	return map[string]any{"id": o.ID, "code": o.Code}
}

func optionList(opts []catalog.Option) []any {
	out := make([]any, len(opts))
	for i, o := range opts {
		out[i] = optionEntry(o)
	}
	return out
}
