package harness

import (
	"fmt"
	"slices"
	"strings"

	exprlang "github.com/expr-lang/expr"

	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/sequencer"
)

// AssertionError is returned when an assertion fails.
// It includes the applied trace to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for i, event := range e.Trace {
		label := event.Action
		if event.Option != "" {
			label = fmt.Sprintf("%s(%s)", event.Action, event.Option)
		}
		switch {
		case event.Error != "":
			fmt.Fprintf(&buf, "  [%d] %s rejected: %s\n", i+1, label, event.Error)
		case event.Blocked:
			fmt.Fprintf(&buf, "  [%d] %s blocked at %s\n", i+1, label, event.Step)
		default:
			fmt.Fprintf(&buf, "  [%d] %s -> %s %s\n", i+1, label, event.Step, event.PartNumber)
		}
	}

	return buf.String()
}

func assertPartNumber(result *Result, a Assertion) error {
	if result.Final.PartNumber == a.Equals {
		return nil
	}
	return &AssertionError{
		Type:     AssertPartNumber,
		Expected: a.Equals,
		Actual:   result.Final.PartNumber,
		Trace:    result.Trace,
	}
}

func assertStep(result *Result, a Assertion) error {
	want, err := sequencer.ParseStep(a.Equals)
	if err != nil {
		return err
	}
	if result.Final.Step == want.Name() {
		return nil
	}
	return &AssertionError{
		Type:     AssertStep,
		Expected: want.Name(),
		Actual:   result.Final.Step,
		Trace:    result.Trace,
	}
}

// assertSelected compares the final selection of a group. A missing ids
// list means the group must be empty.
func assertSelected(result *Result, a Assertion) error {
	g, err := catalog.ParseGroup(a.Group)
	if err != nil {
		return err
	}
	got := result.Final.IDs(g)
	want := a.IDs
	if want == nil {
		want = []string{}
	}
	if slices.Equal(got, want) {
		return nil
	}
	return &AssertionError{
		Type:     AssertSelected,
		Expected: fmt.Sprintf("%s = %v", g, want),
		Actual:   fmt.Sprintf("%s = %v", g, got),
		Trace:    result.Trace,
	}
}

// applied reports whether event was accepted by the session.
func applied(event TraceEvent) bool {
	return event.Error == ""
}

func matches(event TraceEvent, action, option string) bool {
	if !applied(event) || event.Action != action {
		return false
	}
	return option == "" || event.Option == option
}

func assertTraceContains(trace []TraceEvent, a Assertion) error {
	for _, event := range trace {
		if matches(event, a.Action, a.Option) {
			return nil
		}
	}

	want := a.Action
	if a.Option != "" {
		want = fmt.Sprintf("%s(%s)", a.Action, a.Option)
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("applied action %s", want),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that actions appear in the given order.
// Actions don't need to be consecutive.
func assertTraceOrder(trace []TraceEvent, a Assertion) error {
	next := 0
	for _, event := range trace {
		if next < len(a.Actions) && matches(event, a.Actions[next], "") {
			next++
		}
	}
	if next == len(a.Actions) {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceOrder,
		Expected: fmt.Sprintf("actions in order: %v", a.Actions),
		Actual:   fmt.Sprintf("missing or out of order: %s", a.Actions[next]),
		Trace:    trace,
	}
}

func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, event := range trace {
		if matches(event, a.Action, a.Option) {
			count++
		}
	}
	if count == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceCount,
		Expected: fmt.Sprintf("%s applied %d time(s)", a.Action, a.Count),
		Actual:   fmt.Sprintf("applied %d time(s)", count),
		Trace:    trace,
	}
}

// assertExpr evaluates a boolean expr-lang expression over the final state.
//
// Variables: part_number, step, complete, users, card, biometric, network,
// features, network_default, codes.
func assertExpr(result *Result, a Assertion, cat *catalog.Catalog) error {
	env := result.Final.env(cat)

	program, err := exprlang.Compile(a.Expr, exprlang.Env(env), exprlang.AsBool())
	if err != nil {
		return fmt.Errorf("compile expr %q: %w", a.Expr, err)
	}
	out, err := exprlang.Run(program, env)
	if err != nil {
		return fmt.Errorf("evaluate expr %q: %w", a.Expr, err)
	}
	if ok, _ := out.(bool); ok {
		return nil
	}
	return &AssertionError{
		Type:     AssertExpr,
		Expected: a.Expr,
		Actual:   fmt.Sprintf("false (part_number=%s step=%s)", result.Final.PartNumber, result.Final.Step),
		Trace:    result.Trace,
	}
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, cat *catalog.Catalog) []string {
	var errs []string

	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertPartNumber:
			err = assertPartNumber(result, a)
		case AssertStep:
			err = assertStep(result, a)
		case AssertSelected:
			err = assertSelected(result, a)
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, a)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, a)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		case AssertExpr:
			err = assertExpr(result, a, cat)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}

	return errs
}
