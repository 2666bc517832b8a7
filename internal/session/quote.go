package session

import (
	"fmt"

	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/config"
	"github.com/actatek/configurator/internal/ir"
	"github.com/actatek/configurator/internal/partnumber"
	"github.com/actatek/configurator/internal/sequencer"
)

// Quote is an issued, immutable record of a finished configuration.
//
// Fingerprint identifies the configuration content independent of click
// order within biometric and network; two quotes for the same device share
// it even though their Refs differ.
type Quote struct {
	Ref           string               `json:"ref" yaml:"ref"`
	PartNumber    string               `json:"part_number" yaml:"part_number"`
	Fingerprint   string               `json:"fingerprint" yaml:"fingerprint"`
	Seq           int64                `json:"seq" yaml:"seq"`
	Configuration config.Configuration `json:"configuration" yaml:"configuration"`
}

// Quote issues a quote for the current configuration.
// It fails with ErrNotAtSummary unless the session reached the summary step.
func (s *Session) Quote() (Quote, error) {
	if s.steps.Current() != sequencer.StepSummary {
		return Quote{}, fmt.Errorf("quote at step %s: %w", s.steps.Current(), ErrNotAtSummary)
	}

	cfg := partnumber.Normalize(s.store.Configuration(), s.cat)
	pn := s.PartNumber()

	fp, err := QuoteFingerprint(cfg, pn)
	if err != nil {
		return Quote{}, err
	}

	q := Quote{
		Ref:           s.refs.Generate(),
		PartNumber:    pn,
		Fingerprint:   fp,
		Seq:           s.clock.Current(),
		Configuration: cfg,
	}

	s.logger.Info("quote issued",
		"ref", q.Ref,
		"part_number", q.PartNumber,
		"fingerprint", q.Fingerprint,
	)
	return q, nil
}

// QuoteFingerprint hashes a normalized configuration together with its part
// number under the quote domain.
func QuoteFingerprint(cfg config.Configuration, partNumber string) (string, error) {
	fp, err := ir.Fingerprint(ir.DomainQuote, map[string]any{
		"part_number":   partNumber,
		"configuration": cfg.CanonicalMap(),
	})
	if err != nil {
		return "", fmt.Errorf("quote fingerprint: %w", err)
	}
	return fp, nil
}

// Replay applies actions in order to a fresh session and returns it.
// It stops at the first rejected action.
func Replay(cat *catalog.Catalog, actions []Action, opts ...Option) (*Session, error) {
	s := New(cat, opts...)
	for i, a := range actions {
		if _, err := s.Apply(a); err != nil {
			return s, fmt.Errorf("action %d: %w", i, err)
		}
	}
	return s, nil
}
