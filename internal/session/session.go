package session

import (
	"io"
	"log/slog"
	"slices"

	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/config"
	"github.com/actatek/configurator/internal/partnumber"
	"github.com/actatek/configurator/internal/sequencer"
)

// TraceEntry records one applied action and the state it left behind.
type TraceEntry struct {
	Seq        int64          `json:"seq" yaml:"seq"`
	Action     Action         `json:"action" yaml:"action"`
	Step       sequencer.Step `json:"step" yaml:"step"`
	PartNumber string         `json:"part_number" yaml:"part_number"`
	Blocked    bool           `json:"blocked,omitempty" yaml:"blocked,omitempty"`
}

// Session is the single owner of one configuration and step pointer.
type Session struct {
	cat      *catalog.Catalog
	store    *config.Store
	steps    *sequencer.Sequencer
	composer *partnumber.Composer
	clock    *Clock
	refs     RefGenerator
	logger   *slog.Logger
	trace    []TraceEntry
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for action logs. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRefGenerator sets the quote reference generator.
// Defaults to UUIDv7Generator.
func WithRefGenerator(g RefGenerator) Option {
	return func(s *Session) {
		if g != nil {
			s.refs = g
		}
	}
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// New creates a session over cat with an empty configuration at the first step.
func New(cat *catalog.Catalog, opts ...Option) *Session {
	s := &Session{
		cat:      cat,
		store:    config.NewStore(),
		steps:    sequencer.New(),
		composer: partnumber.NewComposer(cat),
		clock:    NewClock(),
		refs:     UUIDv7Generator{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the catalog the session resolves options against.
func (s *Session) Catalog() *catalog.Catalog {
	return s.cat
}

// Configuration returns a snapshot of the current selections.
func (s *Session) Configuration() config.Configuration {
	return s.store.Configuration()
}

// Step returns the current step.
func (s *Session) Step() sequencer.Step {
	return s.steps.Current()
}

// PartNumber derives the part number from the current configuration.
func (s *Session) PartNumber() string {
	return s.composer.PartNumber(s.store.Configuration())
}

// Complete reports whether the current step's requirement is met.
func (s *Session) Complete() bool {
	return sequencer.Complete(s.steps.Current(), s.store.Configuration())
}

// CanAdvance reports whether step.advance would move.
func (s *Session) CanAdvance() bool {
	return s.steps.CanAdvance(s.store.Configuration())
}

// Trace returns a copy of every applied action in order.
func (s *Session) Trace() []TraceEntry {
	return slices.Clone(s.trace)
}

// Apply executes one action.
//
// Selection actions with an unknown option, and unknown action names, are
// rejected with an *ActionError and do not touch the state or the trace.
func (s *Session) Apply(a Action) (TraceEntry, error) {
	blocked := false

	switch a.Name {
	case ActionAdvance:
		blocked = !s.steps.Advance(s.store.Configuration())
	case ActionRetreat:
		blocked = !s.steps.Retreat()
	case ActionReset:
		s.store.Reset()
		s.steps.JumpReset()
	default:
		group, ok := a.Name.Group()
		if !ok {
			return TraceEntry{}, &ActionError{Action: a.Name, Option: a.Option, Err: ErrUnknownAction}
		}
		if a.Option == "" {
			return TraceEntry{}, &ActionError{Action: a.Name, Err: ErrMissingOption}
		}
		opt, ok := s.cat.Lookup(group, a.Option)
		if !ok {
			return TraceEntry{}, &ActionError{Action: a.Name, Option: a.Option, Err: ErrUnknownOption}
		}
		s.applySelection(a.Name, opt)
	}

	entry := TraceEntry{
		Seq:        s.clock.Next(),
		Action:     a,
		Step:       s.steps.Current(),
		PartNumber: s.PartNumber(),
		Blocked:    blocked,
	}
	s.trace = append(s.trace, entry)

	s.logger.Debug("action applied",
		"seq", entry.Seq,
		"action", a.Name,
		"option", a.Option,
		"step", entry.Step.String(),
		"part_number", entry.PartNumber,
		"blocked", blocked,
	)
	return entry, nil
}

func (s *Session) applySelection(name ActionName, opt catalog.Option) {
	switch name {
	case ActionSetUsers:
		s.store.SetSingle(config.SingleUsers, opt)
	case ActionSetCard:
		s.store.SetSingle(config.SingleCard, opt)
	case ActionToggleBiometric:
		s.store.ToggleBiometric(opt)
	case ActionToggleNetwork:
		s.store.ToggleNetwork(opt)
	case ActionToggleFeature:
		s.store.ToggleFeature(opt)
	}
}

// SetUsers applies users.set.
func (s *Session) SetUsers(id string) error {
	_, err := s.Apply(Action{Name: ActionSetUsers, Option: id})
	return err
}

// SetCard applies card.set.
func (s *Session) SetCard(id string) error {
	_, err := s.Apply(Action{Name: ActionSetCard, Option: id})
	return err
}

// ToggleBiometric applies biometric.toggle.
func (s *Session) ToggleBiometric(id string) error {
	_, err := s.Apply(Action{Name: ActionToggleBiometric, Option: id})
	return err
}

// ToggleNetwork applies network.toggle.
func (s *Session) ToggleNetwork(id string) error {
	_, err := s.Apply(Action{Name: ActionToggleNetwork, Option: id})
	return err
}

// ToggleFeature applies feature.toggle.
func (s *Session) ToggleFeature(id string) error {
	_, err := s.Apply(Action{Name: ActionToggleFeature, Option: id})
	return err
}

// Advance applies step.advance and reports whether the step moved.
func (s *Session) Advance() bool {
	entry, _ := s.Apply(Action{Name: ActionAdvance})
	return !entry.Blocked
}

// Retreat applies step.retreat and reports whether the step moved.
func (s *Session) Retreat() bool {
	entry, _ := s.Apply(Action{Name: ActionRetreat})
	return !entry.Blocked
}

// Reset clears every selection and returns to the first step.
func (s *Session) Reset() {
	_, _ = s.Apply(Action{Name: ActionReset})
}
