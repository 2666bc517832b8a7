package config

import (
	"slices"

	"github.com/actatek/configurator/internal/catalog"
)

// SingleGroup names the groups that hold at most one option.
type SingleGroup string

const (
	SingleUsers SingleGroup = SingleGroup(catalog.GroupUsers)
	SingleCard  SingleGroup = SingleGroup(catalog.GroupCard)
)

// Store owns the mutable Configuration of one session.
//
// Store is not safe for concurrent use. A session has exactly one writer and
// every read happens between mutations.
type Store struct {
	cfg Configuration
}

// NewStore returns a Store with every group unset or empty.
func NewStore() *Store {
	return &Store{}
}

// Configuration returns a deep copy of the current state.
func (s *Store) Configuration() Configuration {
	return s.cfg.Clone()
}

// SetSingle replaces the selection of a single-choice group.
// For the card group this drops any prior choice regardless of category.
// Unknown groups are ignored.
func (s *Store) SetSingle(g SingleGroup, opt catalog.Option) {
	switch g {
	case SingleUsers:
		s.cfg.Users = &opt
	case SingleCard:
		s.cfg.Card = &opt
	}
}

// SetUsers is SetSingle(SingleUsers, opt).
func (s *Store) SetUsers(opt catalog.Option) { s.SetSingle(SingleUsers, opt) }

// SetCard is SetSingle(SingleCard, opt).
func (s *Store) SetCard(opt catalog.Option) { s.SetSingle(SingleCard, opt) }

// ToggleBiometric applies the biometric selection rule.
//
// The sentinel replaces the whole set. Any other option is toggled, and the
// sentinel is then dropped if a real option remains.
func (s *Store) ToggleBiometric(opt catalog.Option) {
	if opt.Sentinel {
		s.cfg.Biometric = []catalog.Option{opt}
		return
	}

	var next []catalog.Option
	if containsID(s.cfg.Biometric, opt.ID) {
		next = removeID(s.cfg.Biometric, opt.ID)
	} else {
		next = append(slices.Clone(s.cfg.Biometric), opt)
	}

	if slices.ContainsFunc(next, func(o catalog.Option) bool { return !o.Sentinel }) {
		next = slices.DeleteFunc(next, func(o catalog.Option) bool { return o.Sentinel })
	}
	s.cfg.Biometric = next
}

// ToggleNetwork applies the network selection rule.
//
// The sentinel resets the set to empty; it is never stored. Other options
// toggle membership.
func (s *Store) ToggleNetwork(opt catalog.Option) {
	if opt.Sentinel {
		s.cfg.Network = nil
		return
	}
	if containsID(s.cfg.Network, opt.ID) {
		s.cfg.Network = removeID(s.cfg.Network, opt.ID)
		return
	}
	s.cfg.Network = append(slices.Clone(s.cfg.Network), opt)
}

// ToggleFeature removes opt if present, otherwise appends it. Remaining
// features keep their relative order.
func (s *Store) ToggleFeature(opt catalog.Option) {
	if containsID(s.cfg.Features, opt.ID) {
		s.cfg.Features = removeID(s.cfg.Features, opt.ID)
		return
	}
	s.cfg.Features = append(slices.Clone(s.cfg.Features), opt)
}

// Reset restores the initial, fully unset state.
func (s *Store) Reset() {
	s.cfg = Configuration{}
}
