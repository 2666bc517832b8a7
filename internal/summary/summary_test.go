package summary

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
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

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestBuild_Empty(t *testing.T) {
	v := Build(config.Configuration{}, cat)

	assert.Equal(t, "AT", v.PartNumber)
	require.Len(t, v.Items, 4)
	assert.Equal(t, Item{Label: "User Capacity", Value: "-", Code: "-"}, v.Items[0])
	assert.Equal(t, Item{Label: "Biometric", Value: "-", Code: "-"}, v.Items[1])
	assert.Equal(t, Item{Label: "Network", Value: "LAN", Code: "Default"}, v.Items[3])
	assert.Empty(t, v.Features)
	assert.NotNil(t, v.Features)
}

func TestBuild_BiometricCanonicalOrder(t *testing.T) {
	s := config.NewStore()
	s.ToggleBiometric(opt(t, catalog.GroupBiometric, "finger"))
	s.ToggleBiometric(opt(t, catalog.GroupBiometric, "face"))

	v := Build(s.Configuration(), cat)
	assert.Equal(t, "Face Recognition + Fingerprint", v.Items[1].Value)
	assert.Equal(t, "FA-FLI", v.Items[1].Code)
}

func TestBuild_BiometricNone(t *testing.T) {
	s := config.NewStore()
	s.ToggleBiometric(opt(t, catalog.GroupBiometric, "none"))

	v := Build(s.Configuration(), cat)
	assert.Equal(t, "No Biometrics", v.Items[1].Value)
	assert.Equal(t, "None", v.Items[1].Code)
}

func TestBuild_ExplicitLAN(t *testing.T) {
	s := config.NewStore()
	s.ToggleNetwork(opt(t, catalog.GroupNetwork, "lan"))

	v := Build(s.Configuration(), cat)
	assert.Equal(t, Item{Label: "Network", Value: "LAN", Code: "Default"}, v.Items[3])
}

func TestWriteText_Golden(t *testing.T) {
	s := config.NewStore()
	s.SetUsers(opt(t, catalog.GroupUsers, "5k"))
	s.ToggleBiometric(opt(t, catalog.GroupBiometric, "finger"))
	s.ToggleBiometric(opt(t, catalog.GroupBiometric, "face"))
	s.SetCard(opt(t, catalog.GroupCard, "sm"))
	s.ToggleNetwork(opt(t, catalog.GroupNetwork, "wifi"))
	s.ToggleNetwork(opt(t, catalog.GroupNetwork, "poe"))
	s.ToggleFeature(opt(t, catalog.GroupFeatures, "temp"))
	s.ToggleFeature(opt(t, catalog.GroupFeatures, "camera"))

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Build(s.Configuration(), cat)))

	golden(t).Assert(t, "summary_full", buf.Bytes())
}

func TestWriteText_EmptyGolden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Build(config.Configuration{}, cat)))

	golden(t).Assert(t, "summary_empty", buf.Bytes())
}
