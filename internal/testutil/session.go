package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/session"
)

// Selections names the option ids to pick in each group. Repeated ids in
// the multi-select groups are toggled in the order given.
type Selections struct {
	Users     string
	Biometric []string
	Card      string
	Network   []string
	Features  []string
}

// ConstantRef issues the same quote reference every time.
type ConstantRef string

// Generate implements session.RefGenerator.
func (r ConstantRef) Generate() string {
	return string(r)
}

// Complete applies sel to a fresh session over cat, advancing after each
// group, and fails t unless the session ends on the summary step.
func Complete(t testing.TB, cat *catalog.Catalog, sel Selections, opts ...session.Option) *session.Session {
	t.Helper()

	opts = append([]session.Option{session.WithLogger(session.DiscardLogger())}, opts...)
	s := session.New(cat, opts...)

	apply := func(name session.ActionName, ids ...string) {
		for _, id := range ids {
			_, err := s.Apply(session.Action{Name: name, Option: id})
			require.NoError(t, err, "%s(%s)", name, id)
		}
		require.True(t, s.Advance(), "advance blocked at %s", s.Step())
	}

	apply(session.ActionSetUsers, nonEmpty(sel.Users)...)
	apply(session.ActionToggleBiometric, sel.Biometric...)
	apply(session.ActionSetCard, nonEmpty(sel.Card)...)
	apply(session.ActionToggleNetwork, sel.Network...)
	apply(session.ActionToggleFeature, sel.Features...)
	return s
}

// Quote completes sel against the built-in catalog and issues a quote
// under ref.
func Quote(t testing.TB, ref string, sel Selections) session.Quote {
	t.Helper()

	s := Complete(t, catalog.MustDefault(), sel, session.WithRefGenerator(ConstantRef(ref)))
	q, err := s.Quote()
	require.NoError(t, err)
	return q
}

func nonEmpty(id string) []string {
	if id == "" {
		return nil
	}
	return []string{id}
}
