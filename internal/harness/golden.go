package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/actatek/configurator/internal/ir"
)

// TraceSnapshot captures the complete trace of a scenario execution.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Trace        []TraceEvent `json:"trace"`
	PartNumber   string       `json:"part_number"`
}

// toCanonicalMap converts a TraceSnapshot to the value shapes accepted by
// ir.MarshalCanonical.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, event := range s.Trace {
		eventMap := map[string]any{
			"action":      event.Action,
			"step":        event.Step,
			"part_number": event.PartNumber,
		}
		if event.Seq != 0 {
			eventMap["seq"] = event.Seq
		}
		if event.Option != "" {
			eventMap["option"] = event.Option
		}
		if event.Blocked {
			eventMap["blocked"] = true
		}
		if event.Error != "" {
			eventMap["error"] = event.Error
		}
		traceList[i] = eventMap
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"trace":         traceList,
		"part_number":   s.PartNumber,
	}
}

// Snapshot returns the canonical JSON trace of result, the byte form
// stored in golden files.
func Snapshot(name string, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{
		ScenarioName: name,
		Trace:        result.Trace,
		PartNumber:   result.Final.PartNumber,
	}
	return ir.MarshalCanonical(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is testdata/scenarios/golden/{scenario.Name}.golden, the
// same file GoldenPath names for the scenario and `actatek test` compares.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if trace doesn't match golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	return result, AssertGolden(t, scenario.Name, result)
}

// goldenDir is where package tests keep golden traces, beside the scenarios
// they snapshot.
const goldenDir = "testdata/scenarios/golden"

// AssertGolden compares an existing result's trace against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	traceJSON, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir(goldenDir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)

	return nil
}
