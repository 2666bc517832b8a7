package session

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAction is returned for an action name outside the known set.
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnknownOption is returned when an option id is not in the group's catalog.
	ErrUnknownOption = errors.New("unknown option")

	// ErrMissingOption is returned when a selection action carries no option id.
	ErrMissingOption = errors.New("option id is required")

	// ErrNotAtSummary is returned by Quote before the summary step is reached.
	ErrNotAtSummary = errors.New("quote is only available on the summary step")
)

// ActionError wraps a rejected action with the action and option involved.
type ActionError struct {
	Action ActionName
	Option string
	Err    error
}

func (e *ActionError) Error() string {
	if e.Option != "" {
		return fmt.Sprintf("%s(%s): %v", e.Action, e.Option, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// IsUnknownOption reports whether err stems from an unresolvable option id.
func IsUnknownOption(err error) bool {
	return errors.Is(err, ErrUnknownOption)
}
