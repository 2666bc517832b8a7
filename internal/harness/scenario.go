package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/sequencer"
)

// Scenario defines a configurator test scenario: a flow of session actions
// with per-step expectations and assertions over the final state.
type Scenario struct {
	// Name uniquely identifies this scenario. Golden files are named after it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalog optionally points at a CUE catalog replacing the embedded one.
	// Relative paths resolve against the scenario file's directory when
	// loaded with LoadScenarioWithBasePath.
	Catalog string `yaml:"catalog,omitempty"`

	// Flow is the ordered list of actions to apply.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the trace and final state.
	Assertions []Assertion `yaml:"assertions"`
}

// FlowStep is one session action with an optional expectation.
type FlowStep struct {
	// Action is the action name (e.g., "biometric.toggle").
	Action string `yaml:"action"`

	// Option is the option id for selection actions.
	Option string `yaml:"option,omitempty"`

	// Expect is checked right after the action. Nil means the action must
	// simply not be rejected.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the state right after one flow step.
// Empty fields are not checked.
type ExpectClause struct {
	PartNumber string `yaml:"part_number,omitempty"`
	Step       string `yaml:"step,omitempty"`
	Blocked    *bool  `yaml:"blocked,omitempty"`

	// Error is the expected rejection code: unknown_option, unknown_action
	// or missing_option.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates the trace or the final state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Equals is the expected value (part_number, step).
	Equals string `yaml:"equals,omitempty"`

	// Group and IDs describe the expected selection (selected).
	Group string   `yaml:"group,omitempty"`
	IDs   []string `yaml:"ids,omitempty"`

	// Action and Option identify a trace entry (trace_contains, trace_count).
	Action string `yaml:"action,omitempty"`
	Option string `yaml:"option,omitempty"`

	// Count is the expected number of occurrences (trace_count).
	Count int `yaml:"count,omitempty"`

	// Actions is the expected action order (trace_order).
	Actions []string `yaml:"actions,omitempty"`

	// Expr is a boolean expression over the final state (expr).
	Expr string `yaml:"expr,omitempty"`
}

// Assertion type constants.
const (
	AssertPartNumber    = "part_number"
	AssertStep          = "step"
	AssertSelected      = "selected"
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertExpr          = "expr"
)

// Rejection codes used in expect.error.
const (
	ErrorUnknownOption = "unknown_option"
	ErrorUnknownAction = "unknown_action"
	ErrorMissingOption = "missing_option"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, "")
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving a relative catalog path against basePath.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Catalog != "" && !filepath.IsAbs(scenario.Catalog) && basePath != "" {
		scenario.Catalog = filepath.Join(basePath, scenario.Catalog)
	}
	if scenario.Catalog != "" {
		if _, err := os.Stat(scenario.Catalog); os.IsNotExist(err) {
			return nil, fmt.Errorf("invalid scenario: catalog file not found: %s", scenario.Catalog)
		}
	}

	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
// Action names are not checked here so scenarios can exercise rejection.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Flow {
		if step.Action == "" {
			return fmt.Errorf("flow[%d]: action is required", i)
		}
		if step.Expect == nil {
			continue
		}
		if step.Expect.Step != "" {
			if _, err := sequencer.ParseStep(step.Expect.Step); err != nil {
				return fmt.Errorf("flow[%d].expect: %w", i, err)
			}
		}
		switch step.Expect.Error {
		case "", ErrorUnknownOption, ErrorUnknownAction, ErrorMissingOption:
		default:
			return fmt.Errorf("flow[%d].expect: unknown error code %q", i, step.Expect.Error)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertPartNumber:
		if a.Equals == "" {
			return fmt.Errorf("assertions[%d]: equals is required for part_number", index)
		}
	case AssertStep:
		if _, err := sequencer.ParseStep(a.Equals); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	case AssertSelected:
		if _, err := catalog.ParseGroup(a.Group); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
	case AssertTraceContains:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Actions) == 0 {
			return fmt.Errorf("assertions[%d]: actions list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Action == "" {
			return fmt.Errorf("assertions[%d]: action is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertExpr:
		if a.Expr == "" {
			return fmt.Errorf("assertions[%d]: expr is required for expr", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
