package partnumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/config"
)

var cat = catalog.MustDefault()

func opt(t *testing.T, g catalog.Group, id string) catalog.Option {
	t.Helper()
	o, ok := cat.Lookup(g, id)
	require.True(t, ok, "option %s/%s not in catalog", g, id)
	return o
}

func TestCompose_Empty(t *testing.T) {
	assert.Equal(t, "AT", Compose(config.Configuration{}, cat))
}

func TestCompose_EndToEnd(t *testing.T) {
	s := config.NewStore()
	s.SetUsers(opt(t, catalog.GroupUsers, "5k"))
	s.ToggleBiometric(opt(t, catalog.GroupBiometric, "finger"))
	s.SetCard(opt(t, catalog.GroupCard, "sm"))
	s.ToggleFeature(opt(t, catalog.GroupFeatures, "camera"))

	assert.Equal(t, "AT-5K-FLI-SM-C", Compose(s.Configuration(), cat))
}

func TestCompose_BiometricCanonicalOrder(t *testing.T) {
	face := opt(t, catalog.GroupBiometric, "face")
	finger := opt(t, catalog.GroupBiometric, "finger")

	a := config.NewStore()
	a.ToggleBiometric(face)
	a.ToggleBiometric(finger)

	b := config.NewStore()
	b.ToggleBiometric(finger)
	b.ToggleBiometric(face)

	assert.Equal(t, "AT-FA-FLI", Compose(a.Configuration(), cat))
	assert.Equal(t, Compose(a.Configuration(), cat), Compose(b.Configuration(), cat))
}

func TestCompose_NetworkCanonicalOrder(t *testing.T) {
	clicks := [][]string{
		{"mobile", "wifi", "poe"},
		{"poe", "wifi", "mobile"},
		{"wifi", "mobile", "poe"},
	}

	for _, order := range clicks {
		s := config.NewStore()
		for _, id := range order {
			s.ToggleNetwork(opt(t, catalog.GroupNetwork, id))
		}
		assert.Equal(t, "AT-P-W-W3", Compose(s.Configuration(), cat), "click order %v", order)
	}
}

func TestCompose_FeaturesKeepClickOrder(t *testing.T) {
	intercom := opt(t, catalog.GroupFeatures, "intercom")
	camera := opt(t, catalog.GroupFeatures, "camera")

	a := config.NewStore()
	a.ToggleFeature(intercom)
	a.ToggleFeature(camera)
	assert.Equal(t, "AT-I-C", Compose(a.Configuration(), cat))

	b := config.NewStore()
	b.ToggleFeature(camera)
	b.ToggleFeature(intercom)
	assert.Equal(t, "AT-C-I", Compose(b.Configuration(), cat))
}

func TestCompose_SentinelsContributeNothing(t *testing.T) {
	s := config.NewStore()
	s.SetUsers(opt(t, catalog.GroupUsers, "1k"))
	s.ToggleBiometric(opt(t, catalog.GroupBiometric, "none"))
	s.SetCard(opt(t, catalog.GroupCard, "shp"))
	s.ToggleNetwork(opt(t, catalog.GroupNetwork, "wifi"))
	s.ToggleNetwork(opt(t, catalog.GroupNetwork, "lan"))

	assert.Equal(t, "AT-1K-SHp", Compose(s.Configuration(), cat))
}

func TestCompose_SkipsEmptyFeatureCode(t *testing.T) {
	cfg := config.Configuration{
		Features: []catalog.Option{{ID: "blank"}, {ID: "camera", Code: "C"}},
	}
	assert.Equal(t, "AT-C", Compose(cfg, cat))
}

func TestCompose_FullConfiguration(t *testing.T) {
	s := config.NewStore()
	s.SetUsers(opt(t, catalog.GroupUsers, "100k"))
	s.ToggleBiometric(opt(t, catalog.GroupBiometric, "finger"))
	s.ToggleBiometric(opt(t, catalog.GroupBiometric, "face"))
	s.SetCard(opt(t, catalog.GroupCard, "sva"))
	s.ToggleNetwork(opt(t, catalog.GroupNetwork, "wifi"))
	s.ToggleNetwork(opt(t, catalog.GroupNetwork, "poe"))
	s.ToggleFeature(opt(t, catalog.GroupFeatures, "temp"))
	s.ToggleFeature(opt(t, catalog.GroupFeatures, "intercom"))

	assert.Equal(t, "AT-100K-FA-FLI-SVa-P-W-TEMSEN-I", Compose(s.Configuration(), cat))
}

func TestFragments(t *testing.T) {
	s := config.NewStore()
	s.SetUsers(opt(t, catalog.GroupUsers, "3k"))
	s.ToggleNetwork(opt(t, catalog.GroupNetwork, "mobile"))

	assert.Equal(t, []Fragment{
		{Group: catalog.GroupUsers, OptionID: "3k", Code: "3K"},
		{Group: catalog.GroupNetwork, OptionID: "mobile", Code: "W3"},
	}, Fragments(s.Configuration(), cat))
}

func TestCanonical_UnknownSortsLast(t *testing.T) {
	in := []catalog.Option{{ID: "iris", Code: "IR"}, opt(t, catalog.GroupBiometric, "finger"), opt(t, catalog.GroupBiometric, "face")}
	out := Canonical(cat, catalog.GroupBiometric, in)

	ids := []string{out[0].ID, out[1].ID, out[2].ID}
	assert.Equal(t, []string{"face", "finger", "iris"}, ids)
	assert.Equal(t, "iris", in[0].ID, "input must not be reordered")
}

func TestNormalize(t *testing.T) {
	a := config.NewStore()
	a.ToggleNetwork(opt(t, catalog.GroupNetwork, "wifi"))
	a.ToggleNetwork(opt(t, catalog.GroupNetwork, "poe"))

	b := config.NewStore()
	b.ToggleNetwork(opt(t, catalog.GroupNetwork, "poe"))
	b.ToggleNetwork(opt(t, catalog.GroupNetwork, "wifi"))

	assert.NotEqual(t, a.Configuration().Fingerprint(), b.Configuration().Fingerprint())
	assert.Equal(t,
		Normalize(a.Configuration(), cat).Fingerprint(),
		Normalize(b.Configuration(), cat).Fingerprint(),
	)
}
