package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenario_Valid(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: simple
description: "One selection"
flow:
  - action: users.set
    option: 5k
    expect:
      part_number: AT-5K
      blocked: false
assertions:
  - type: part_number
    equals: AT-5K
`))
	require.NoError(t, err)

	assert.Equal(t, "simple", scenario.Name)
	require.Len(t, scenario.Flow, 1)
	assert.Equal(t, "users.set", scenario.Flow[0].Action)
	assert.Equal(t, "5k", scenario.Flow[0].Option)
	require.NotNil(t, scenario.Flow[0].Expect)
	require.NotNil(t, scenario.Flow[0].Expect.Blocked)
	assert.False(t, *scenario.Flow[0].Expect.Blocked)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: x\ndescription: y\nflows: []\n",
			wantErr: "field flows not found",
		},
		{
			name:    "missing name",
			yaml:    "description: y\nflow: [{action: reset}]\nassertions: [{type: step, equals: users}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: x\nflow: [{action: reset}]\nassertions: [{type: step, equals: users}]\n",
			wantErr: "description is required",
		},
		{
			name:    "empty flow",
			yaml:    "name: x\ndescription: y\nassertions: [{type: step, equals: users}]\n",
			wantErr: "flow list is required",
		},
		{
			name:    "empty assertions",
			yaml:    "name: x\ndescription: y\nflow: [{action: reset}]\n",
			wantErr: "assertions list is required",
		},
		{
			name:    "flow step without action",
			yaml:    "name: x\ndescription: y\nflow: [{option: 5k}]\nassertions: [{type: step, equals: users}]\n",
			wantErr: "flow[0]: action is required",
		},
		{
			name:    "unknown expect step",
			yaml:    "name: x\ndescription: y\nflow: [{action: reset, expect: {step: checkout}}]\nassertions: [{type: step, equals: users}]\n",
			wantErr: `unknown step "checkout"`,
		},
		{
			name:    "unknown error code",
			yaml:    "name: x\ndescription: y\nflow: [{action: reset, expect: {error: boom}}]\nassertions: [{type: step, equals: users}]\n",
			wantErr: `unknown error code "boom"`,
		},
		{
			name:    "unknown assertion type",
			yaml:    "name: x\ndescription: y\nflow: [{action: reset}]\nassertions: [{type: final_state}]\n",
			wantErr: `unknown assertion type "final_state"`,
		},
		{
			name:    "selected without valid group",
			yaml:    "name: x\ndescription: y\nflow: [{action: reset}]\nassertions: [{type: selected, group: colour}]\n",
			wantErr: `unknown group "colour"`,
		},
		{
			name:    "negative count",
			yaml:    "name: x\ndescription: y\nflow: [{action: reset}]\nassertions: [{type: trace_count, action: reset, count: -1}]\n",
			wantErr: "count must be non-negative",
		},
		{
			name:    "empty expr",
			yaml:    "name: x\ndescription: y\nflow: [{action: reset}]\nassertions: [{type: expr}]\n",
			wantErr: "expr is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenarioWithBasePath_ResolvesCatalog(t *testing.T) {
	scenario, err := LoadScenarioWithBasePath("testdata/override/compact.yaml", "testdata/override")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata/override", "compact.cue"), scenario.Catalog)
}

func TestLoadScenarioWithBasePath_MissingCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	data := "name: x\ndescription: y\ncatalog: nope.cue\nflow: [{action: reset}]\nassertions: [{type: step, equals: users}]\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := LoadScenarioWithBasePath(path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog file not found")
}
