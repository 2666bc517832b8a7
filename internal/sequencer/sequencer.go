package sequencer

import "github.com/actatek/configurator/internal/config"

// Sequencer holds the current step pointer.
//
// Blocked transitions are not errors: Advance and Retreat report whether
// they moved and leave the pointer untouched otherwise.
type Sequencer struct {
	current Step
}

// New returns a Sequencer positioned at the first step.
func New() *Sequencer {
	return &Sequencer{current: First}
}

// Current returns the current step.
func (s *Sequencer) Current() Step {
	return s.current
}

// CanAdvance reports whether Advance would move given cfg.
func (s *Sequencer) CanAdvance(cfg config.Configuration) bool {
	return s.current < Last && Complete(s.current, cfg)
}

// Advance moves to the next step when the current one is complete.
func (s *Sequencer) Advance(cfg config.Configuration) bool {
	if !s.CanAdvance(cfg) {
		return false
	}
	s.current++
	return true
}

// CanRetreat reports whether Retreat would move.
func (s *Sequencer) CanRetreat() bool {
	return s.current > First
}

// Retreat moves to the previous step unless already at the first.
func (s *Sequencer) Retreat() bool {
	if !s.CanRetreat() {
		return false
	}
	s.current--
	return true
}

// JumpReset returns to the first step unconditionally.
func (s *Sequencer) JumpReset() {
	s.current = First
}
