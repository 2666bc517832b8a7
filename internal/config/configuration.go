package config

import (
	"slices"

	"github.com/actatek/configurator/internal/catalog"
)

// Configuration is a snapshot of the five selection groups.
//
// Users and Card are nil when unset. Biometric and Network hold no required
// order; Features keeps the order options were added in.
type Configuration struct {
	Users     *catalog.Option  `json:"users,omitempty" yaml:"users,omitempty"`
	Biometric []catalog.Option `json:"biometric" yaml:"biometric"`
	Card      *catalog.Option  `json:"card,omitempty" yaml:"card,omitempty"`
	Network   []catalog.Option `json:"network" yaml:"network"`
	Features  []catalog.Option `json:"features" yaml:"features"`
}

// Clone returns a deep copy that shares no memory with c.
func (c Configuration) Clone() Configuration {
	out := Configuration{
		Biometric: slices.Clone(c.Biometric),
		Network:   slices.Clone(c.Network),
		Features:  slices.Clone(c.Features),
	}
	if c.Users != nil {
		u := *c.Users
		out.Users = &u
	}
	if c.Card != nil {
		card := *c.Card
		out.Card = &card
	}
	return out
}

// IsEmpty reports whether nothing has been selected in any group.
func (c Configuration) IsEmpty() bool {
	return c.Users == nil && c.Card == nil &&
		len(c.Biometric) == 0 && len(c.Network) == 0 && len(c.Features) == 0
}

// NetworkDefault reports whether the default network (the sentinel) is in
// effect, which is exactly when no real network option is selected.
func (c Configuration) NetworkDefault() bool {
	return len(c.Network) == 0
}

// Selected reports whether the option with id is currently selected in g.
// For the network sentinel this is NetworkDefault, since the sentinel is
// never stored.
func (c Configuration) Selected(g catalog.Group, opt catalog.Option) bool {
	switch g {
	case catalog.GroupUsers:
		return c.Users != nil && c.Users.ID == opt.ID
	case catalog.GroupCard:
		return c.Card != nil && c.Card.ID == opt.ID
	case catalog.GroupBiometric:
		return containsID(c.Biometric, opt.ID)
	case catalog.GroupNetwork:
		if opt.Sentinel {
			return c.NetworkDefault()
		}
		return containsID(c.Network, opt.ID)
	case catalog.GroupFeatures:
		return containsID(c.Features, opt.ID)
	}
	return false
}

// IDs returns the selected identifiers of g in storage order.
func (c Configuration) IDs(g catalog.Group) []string {
	var opts []catalog.Option
	switch g {
	case catalog.GroupUsers:
		if c.Users != nil {
			return []string{c.Users.ID}
		}
		return nil
	case catalog.GroupCard:
		if c.Card != nil {
			return []string{c.Card.ID}
		}
		return nil
	case catalog.GroupBiometric:
		opts = c.Biometric
	case catalog.GroupNetwork:
		opts = c.Network
	case catalog.GroupFeatures:
		opts = c.Features
	}

	ids := make([]string, len(opts))
	for i, o := range opts {
		ids[i] = o.ID
	}
	return ids
}

func containsID(opts []catalog.Option, id string) bool {
	return indexOf(opts, id) >= 0
}

func indexOf(opts []catalog.Option, id string) int {
	return slices.IndexFunc(opts, func(o catalog.Option) bool { return o.ID == id })
}

func removeID(opts []catalog.Option, id string) []catalog.Option {
	return slices.DeleteFunc(slices.Clone(opts), func(o catalog.Option) bool { return o.ID == id })
}
