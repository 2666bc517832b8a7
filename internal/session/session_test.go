package session

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/sequencer"
)

// fixedRef issues the same quote ref every time.
type fixedRef string

func (r fixedRef) Generate() string { return string(r) }

// newTestSession returns a quiet session. A non-empty ref replaces the
// UUIDv7 quote refs.
func newTestSession(ref string) *Session {
	opts := []Option{WithLogger(DiscardLogger())}
	if ref != "" {
		opts = append(opts, WithRefGenerator(fixedRef(ref)))
	}
	return New(catalog.MustDefault(), opts...)
}

func TestNew_Initial(t *testing.T) {
	s := newTestSession("")

	assert.Equal(t, sequencer.StepUsers, s.Step())
	assert.Equal(t, "AT", s.PartNumber())
	assert.False(t, s.Complete())
	assert.True(t, s.Configuration().IsEmpty())
	assert.Empty(t, s.Trace())
}

func TestSession_EndToEnd(t *testing.T) {
	s := newTestSession("")

	require.NoError(t, s.SetUsers("5k"))
	require.True(t, s.Advance())
	require.NoError(t, s.ToggleBiometric("finger"))
	require.True(t, s.Advance())
	require.NoError(t, s.SetCard("sm"))
	require.True(t, s.Advance())
	require.True(t, s.Advance())
	require.NoError(t, s.ToggleFeature("camera"))
	require.True(t, s.Advance())

	assert.Equal(t, sequencer.StepSummary, s.Step())
	assert.Equal(t, "AT-5K-FLI-SM-C", s.PartNumber())
}

func TestApply_BlockedAdvance(t *testing.T) {
	s := newTestSession("")

	entry, err := s.Apply(Action{Name: ActionAdvance})
	require.NoError(t, err)
	assert.True(t, entry.Blocked)
	assert.Equal(t, sequencer.StepUsers, entry.Step)
	assert.Equal(t, int64(1), entry.Seq)

	entry, err = s.Apply(Action{Name: ActionRetreat})
	require.NoError(t, err)
	assert.True(t, entry.Blocked)
}

func TestApply_BiometricGate(t *testing.T) {
	s := newTestSession("")
	require.NoError(t, s.SetUsers("1k"))
	require.True(t, s.Advance())

	assert.False(t, s.CanAdvance())
	assert.False(t, s.Advance())

	require.NoError(t, s.ToggleBiometric("none"))
	assert.True(t, s.CanAdvance())
	assert.True(t, s.Advance())
	assert.Equal(t, sequencer.StepCard, s.Step())
}

func TestApply_UnknownOption(t *testing.T) {
	s := newTestSession("")
	require.NoError(t, s.SetUsers("5k"))
	before := s.Configuration()

	_, err := s.Apply(Action{Name: ActionSetUsers, Option: "9k"})
	require.Error(t, err)
	assert.True(t, IsUnknownOption(err))

	var ae *ActionError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, ActionSetUsers, ae.Action)
	assert.Equal(t, "9k", ae.Option)
	assert.Equal(t, "users.set(9k): unknown option", err.Error())

	assert.Equal(t, before, s.Configuration())
	assert.Len(t, s.Trace(), 1, "rejected actions are not traced")
}

func TestApply_OptionFromWrongGroup(t *testing.T) {
	s := newTestSession("")
	err := s.ToggleNetwork("face")
	assert.ErrorIs(t, err, ErrUnknownOption)
}

func TestApply_UnknownActionAndMissingOption(t *testing.T) {
	s := newTestSession("")

	_, err := s.Apply(Action{Name: "users.clear"})
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = s.Apply(Action{Name: ActionToggleFeature})
	assert.ErrorIs(t, err, ErrMissingOption)
}

func TestApply_Trace(t *testing.T) {
	s := newTestSession("")
	require.NoError(t, s.SetUsers("3k"))
	require.NoError(t, s.ToggleNetwork("wifi"))
	require.NoError(t, s.ToggleNetwork("lan"))

	trace := s.Trace()
	require.Len(t, trace, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{trace[0].Seq, trace[1].Seq, trace[2].Seq})
	assert.Equal(t, "AT-3K", trace[0].PartNumber)
	assert.Equal(t, "AT-3K-W", trace[1].PartNumber)
	assert.Equal(t, "AT-3K", trace[2].PartNumber)
	assert.Equal(t, Action{Name: ActionToggleNetwork, Option: "lan"}, trace[2].Action)

	trace[0].PartNumber = "mutated"
	assert.Equal(t, "AT-3K", s.Trace()[0].PartNumber)
}

func TestReset_FromAnyState(t *testing.T) {
	s := newTestSession("")
	require.NoError(t, s.SetUsers("100k"))
	require.True(t, s.Advance())
	require.NoError(t, s.ToggleBiometric("face"))
	require.True(t, s.Advance())
	require.NoError(t, s.SetCard("sir"))
	require.NoError(t, s.ToggleNetwork("mobile"))
	require.NoError(t, s.ToggleFeature("temp"))

	s.Reset()
	assert.Equal(t, sequencer.StepUsers, s.Step())
	assert.True(t, s.Configuration().IsEmpty())
	assert.Equal(t, "AT", s.PartNumber())
}

func TestQuote(t *testing.T) {
	s := newTestSession("quote-1")

	_, err := s.Quote()
	require.ErrorIs(t, err, ErrNotAtSummary)

	s = driveToSummary(t, "quote-1")
	q, err := s.Quote()
	require.NoError(t, err)

	assert.Equal(t, "quote-1", q.Ref)
	assert.Equal(t, "AT-5K-FA-FLI-SM-C", q.PartNumber)
	assert.Len(t, q.Fingerprint, 64)
	assert.Equal(t, []string{"face", "finger"}, q.Configuration.IDs(catalog.GroupBiometric))
	assert.Equal(t, s.Trace()[len(s.Trace())-1].Seq, q.Seq)
}

func TestQuote_DefaultRefs(t *testing.T) {
	s := driveToSummary(t, "")

	first, err := s.Quote()
	require.NoError(t, err)
	second, err := s.Quote()
	require.NoError(t, err)

	parsed, err := uuid.Parse(first.Ref)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, first.Ref, second.Ref)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
}

func TestQuote_FingerprintIgnoresClickOrder(t *testing.T) {
	a := driveToSummary(t, "a")
	qa, err := a.Quote()
	require.NoError(t, err)

	b, err := Replay(catalog.MustDefault(), []Action{
		{Name: ActionSetUsers, Option: "5k"},
		{Name: ActionAdvance},
		{Name: ActionToggleBiometric, Option: "face"},
		{Name: ActionToggleBiometric, Option: "finger"},
		{Name: ActionAdvance},
		{Name: ActionSetCard, Option: "sm"},
		{Name: ActionAdvance},
		{Name: ActionAdvance},
		{Name: ActionToggleFeature, Option: "camera"},
		{Name: ActionAdvance},
	}, WithLogger(DiscardLogger()), WithRefGenerator(fixedRef("b")))
	require.NoError(t, err)
	qb, err := b.Quote()
	require.NoError(t, err)

	assert.Equal(t, qa.PartNumber, qb.PartNumber)
	assert.Equal(t, qa.Fingerprint, qb.Fingerprint)
	assert.NotEqual(t, qa.Ref, qb.Ref)
}

func TestReplay_StopsAtRejectedAction(t *testing.T) {
	s, err := Replay(catalog.MustDefault(), []Action{
		{Name: ActionSetUsers, Option: "5k"},
		{Name: ActionSetCard, Option: "nfc"},
		{Name: ActionToggleFeature, Option: "camera"},
	}, WithLogger(DiscardLogger()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "action 1")
	assert.Equal(t, "AT-5K", s.PartNumber())
}

func TestParseActionName(t *testing.T) {
	a, err := ParseActionName("network.toggle")
	require.NoError(t, err)
	assert.Equal(t, ActionToggleNetwork, a)

	_, err = ParseActionName("network.clear")
	assert.ErrorIs(t, err, ErrUnknownAction)

	name, ok := SelectAction(catalog.GroupFeatures)
	assert.True(t, ok)
	assert.Equal(t, ActionToggleFeature, name)
}

// driveToSummary builds 5k / finger+face (reverse click order) / sm / camera.
func driveToSummary(t *testing.T, ref string) *Session {
	t.Helper()
	s := newTestSession(ref)
	require.NoError(t, s.SetUsers("5k"))
	require.True(t, s.Advance())
	require.NoError(t, s.ToggleBiometric("finger"))
	require.NoError(t, s.ToggleBiometric("face"))
	require.True(t, s.Advance())
	require.NoError(t, s.SetCard("sm"))
	require.True(t, s.Advance())
	require.True(t, s.Advance())
	require.NoError(t, s.ToggleFeature("camera"))
	require.True(t, s.Advance())
	require.Equal(t, sequencer.StepSummary, s.Step())
	return s
}
