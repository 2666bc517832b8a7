// Package sequencer implements the linear step progression of the
// configurator: five selection steps followed by a terminal summary.
package sequencer

import (
	"fmt"
	"strings"

	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/config"
)

// Step is an index into the fixed step sequence.
type Step int

const (
	StepUsers Step = iota
	StepBiometric
	StepCard
	StepNetwork
	StepFeatures
	StepSummary
)

// First and Last bound the sequence.
const (
	First = StepUsers
	Last  = StepSummary
)

// Info is presentation metadata for a step.
type Info struct {
	Title    string
	Subtitle string
}

var infos = [...]Info{
	StepUsers:     {"Users", "Select Capacity"},
	StepBiometric: {"Biometrics", "Authentication Method"},
	StepCard:      {"Card", "Smart Card Type"},
	StepNetwork:   {"Network", "Connectivity"},
	StepFeatures:  {"Features", "Optional Add-ons"},
	StepSummary:   {"Summary", "Configuration Complete"},
}

// Steps lists every step in order.
var Steps = []Step{StepUsers, StepBiometric, StepCard, StepNetwork, StepFeatures, StepSummary}

// Valid reports whether s is inside the sequence.
func (s Step) Valid() bool {
	return s >= First && s <= Last
}

// Info returns the step's title and subtitle.
func (s Step) Info() Info {
	if !s.Valid() {
		return Info{}
	}
	return infos[s]
}

// Group returns the selection group edited on s. The summary step edits none.
func (s Step) Group() (catalog.Group, bool) {
	switch s {
	case StepUsers:
		return catalog.GroupUsers, true
	case StepBiometric:
		return catalog.GroupBiometric, true
	case StepCard:
		return catalog.GroupCard, true
	case StepNetwork:
		return catalog.GroupNetwork, true
	case StepFeatures:
		return catalog.GroupFeatures, true
	}
	return "", false
}

var names = [...]string{
	StepUsers:     "users",
	StepBiometric: "biometric",
	StepCard:      "card",
	StepNetwork:   "network",
	StepFeatures:  "features",
	StepSummary:   "summary",
}

// Name is the lowercase key used in scenario files and JSON output.
func (s Step) Name() string {
	if !s.Valid() {
		return ""
	}
	return names[s]
}

// ParseStep accepts a step key ("biometric") or title ("Biometrics"),
// ignoring case.
func ParseStep(v string) (Step, error) {
	for _, s := range Steps {
		if strings.EqualFold(v, names[s]) || strings.EqualFold(v, infos[s].Title) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown step %q", v)
}

func (s Step) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return infos[s].Title
}

// Complete reports whether the configuration satisfies step s.
//
//	users      a capacity is chosen
//	biometric  at least one option, the sentinel included
//	card       a card is chosen
//	network    always (empty means LAN)
//	features   always (optional)
//	summary    always (terminal)
func Complete(s Step, cfg config.Configuration) bool {
	switch s {
	case StepUsers:
		return cfg.Users != nil
	case StepBiometric:
		return len(cfg.Biometric) > 0
	case StepCard:
		return cfg.Card != nil
	}
	return true
}
