package harness

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/partnumber"
	"github.com/actatek/configurator/internal/sequencer"
	"github.com/actatek/configurator/internal/session"
)

// Harness holds the collaborators of one scenario execution.
type Harness struct {
	cat     *catalog.Catalog
	session *session.Session
	logger  *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs on a fresh session. Execution flow:
//  1. Load the catalog (embedded, or the scenario's override)
//  2. Apply each flow step and check its expect clause
//  3. Capture the final state
//  4. Evaluate assertions
//
// The error return is reserved for problems running the scenario at all;
// failed expectations are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	cat, err := loadCatalog(scenario.Catalog)
	if err != nil {
		return nil, err
	}

	logger := session.DiscardLogger()
	h := &Harness{
		cat:     cat,
		session: session.New(cat, session.WithLogger(logger)),
		logger:  logger,
	}

	result := NewResult()
	h.executeFlow(scenario.Flow, result)
	result.Final = h.state()

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, cat) {
		result.AddError(errMsg)
	}

	return result, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		cat, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load embedded catalog: %w", err)
		}
		return cat, nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	return cat, nil
}

// executeFlow applies every flow step. A rejected action is recorded and
// execution continues with the next step.
func (h *Harness) executeFlow(flow []FlowStep, result *Result) {
	for i, step := range flow {
		action := session.Action{Name: session.ActionName(step.Action), Option: step.Option}

		event := TraceEvent{Action: step.Action, Option: step.Option}
		entry, err := h.session.Apply(action)
		if err != nil {
			event.Error = errorCode(err)
		} else {
			event.Seq = entry.Seq
			event.Blocked = entry.Blocked
		}
		event.Step = h.session.Step().Name()
		event.PartNumber = h.session.PartNumber()
		result.Trace = append(result.Trace, event)

		for _, msg := range checkExpect(i, step, event, err) {
			result.AddError(msg)
		}

		h.logger.Info("flow step completed",
			"step", i,
			"action", step.Action,
			"option", step.Option,
			"part_number", event.PartNumber,
			"error", event.Error,
		)
	}
}

func (h *Harness) state() State {
	return State{
		PartNumber:    h.session.PartNumber(),
		Step:          h.session.Step().Name(),
		Complete:      h.session.Complete(),
		Configuration: partnumber.Normalize(h.session.Configuration(), h.cat),
	}
}

// checkExpect compares one executed step against its expect clause.
func checkExpect(i int, step FlowStep, event TraceEvent, err error) []string {
	var msgs []string
	exp := step.Expect

	if exp == nil || exp.Error == "" {
		if err != nil {
			msgs = append(msgs, fmt.Sprintf("flow[%d] %s: unexpected error: %v", i, step.Action, err))
		}
	} else if event.Error != exp.Error {
		got := event.Error
		if got == "" {
			got = "no error"
		}
		msgs = append(msgs, fmt.Sprintf("flow[%d] %s: expected error %s, got %s", i, step.Action, exp.Error, got))
	}

	if exp == nil {
		return msgs
	}

	if exp.PartNumber != "" && exp.PartNumber != event.PartNumber {
		msgs = append(msgs, fmt.Sprintf("flow[%d] %s: expected part number %s, got %s", i, step.Action, exp.PartNumber, event.PartNumber))
	}
	if exp.Step != "" {
		want, _ := sequencer.ParseStep(exp.Step)
		if want.Name() != event.Step {
			msgs = append(msgs, fmt.Sprintf("flow[%d] %s: expected step %s, got %s", i, step.Action, want.Name(), event.Step))
		}
	}
	if exp.Blocked != nil && *exp.Blocked != event.Blocked {
		msgs = append(msgs, fmt.Sprintf("flow[%d] %s: expected blocked=%t, got %t", i, step.Action, *exp.Blocked, event.Blocked))
	}

	return msgs
}

// errorCode maps a rejected action to its scenario error code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, session.ErrUnknownOption):
		return ErrorUnknownOption
	case errors.Is(err, session.ErrUnknownAction):
		return ErrorUnknownAction
	case errors.Is(err, session.ErrMissingOption):
		return ErrorMissingOption
	}
	return err.Error()
}
