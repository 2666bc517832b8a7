package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_Canonical(t *testing.T) {
	result := NewResult()
	result.Trace = []TraceEvent{
		{Seq: 1, Action: "step.advance", Step: "users", PartNumber: "AT", Blocked: true},
		{Action: "users.set", Option: "9k", Step: "users", PartNumber: "AT", Error: ErrorUnknownOption},
	}
	result.Final.PartNumber = "AT"

	data, err := Snapshot("snap", result)
	require.NoError(t, err)
	assert.Equal(t,
		`{"part_number":"AT","scenario_name":"snap","trace":[`+
			`{"action":"step.advance","blocked":true,"part_number":"AT","seq":1,"step":"users"},`+
			`{"action":"users.set","error":"unknown_option","option":"9k","part_number":"AT","step":"users"}]}`,
		string(data))
}

func TestSnapshot_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/end_to_end.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := Snapshot(scenario.Name, first)
	require.NoError(t, err)
	b, err := Snapshot(scenario.Name, second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
