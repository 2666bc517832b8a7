package session

import (
	"fmt"

	"github.com/actatek/configurator/internal/catalog"
)

// ActionName identifies one of the session operations.
type ActionName string

const (
	ActionSetUsers        ActionName = "users.set"
	ActionSetCard         ActionName = "card.set"
	ActionToggleBiometric ActionName = "biometric.toggle"
	ActionToggleNetwork   ActionName = "network.toggle"
	ActionToggleFeature   ActionName = "feature.toggle"
	ActionAdvance         ActionName = "step.advance"
	ActionRetreat         ActionName = "step.retreat"
	ActionReset           ActionName = "reset"
)

// ActionNames lists every action in a stable order.
var ActionNames = []ActionName{
	ActionSetUsers,
	ActionSetCard,
	ActionToggleBiometric,
	ActionToggleNetwork,
	ActionToggleFeature,
	ActionAdvance,
	ActionRetreat,
	ActionReset,
}

// Group returns the catalog group whose option the action selects.
// Step and reset actions take no option.
func (a ActionName) Group() (catalog.Group, bool) {
	switch a {
	case ActionSetUsers:
		return catalog.GroupUsers, true
	case ActionSetCard:
		return catalog.GroupCard, true
	case ActionToggleBiometric:
		return catalog.GroupBiometric, true
	case ActionToggleNetwork:
		return catalog.GroupNetwork, true
	case ActionToggleFeature:
		return catalog.GroupFeatures, true
	}
	return "", false
}

// Valid reports whether a is a known action.
func (a ActionName) Valid() bool {
	for _, n := range ActionNames {
		if n == a {
			return true
		}
	}
	return false
}

// ParseActionName converts s into an ActionName.
func ParseActionName(s string) (ActionName, error) {
	a := ActionName(s)
	if !a.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownAction, s)
	}
	return a, nil
}

// SelectAction returns the action that edits group g.
func SelectAction(g catalog.Group) (ActionName, bool) {
	for _, n := range ActionNames {
		if got, ok := n.Group(); ok && got == g {
			return n, true
		}
	}
	return "", false
}

// Action is one user event.
type Action struct {
	Name   ActionName `json:"action" yaml:"action"`
	Option string     `json:"option,omitempty" yaml:"option,omitempty"`
}

func (a Action) String() string {
	if a.Option == "" {
		return string(a.Name)
	}
	return fmt.Sprintf("%s(%s)", a.Name, a.Option)
}
