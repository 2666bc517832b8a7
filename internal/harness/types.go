package harness

import (
	"github.com/actatek/configurator/internal/catalog"
	"github.com/actatek/configurator/internal/config"
	"github.com/actatek/configurator/internal/partnumber"
)

// TraceEvent records one flow step as executed.
// Rejected actions carry Error and no Seq, since the session does not
// stamp them.
type TraceEvent struct {
	Seq        int64  `json:"seq,omitempty"`
	Action     string `json:"action"`
	Option     string `json:"option,omitempty"`
	Step       string `json:"step"`
	PartNumber string `json:"part_number"`
	Blocked    bool   `json:"blocked,omitempty"`
	Error      string `json:"error,omitempty"`
}

// State is the session state after the last flow step.
type State struct {
	PartNumber    string               `json:"part_number"`
	Step          string               `json:"step"`
	Complete      bool                 `json:"complete"`
	Configuration config.Configuration `json:"configuration"`
}

// IDs returns the selected ids of g. Configuration is normalized, so
// biometric and network come back in catalog order.
func (s State) IDs(g catalog.Group) []string {
	return s.Configuration.IDs(g)
}

// env is the variable set visible to expr assertions.
func (s State) env(cat *catalog.Catalog) map[string]any {
	single := func(o *catalog.Option) string {
		if o == nil {
			return ""
		}
		return o.ID
	}

	codes := []string{}
	for _, f := range partnumber.Fragments(s.Configuration, cat) {
		codes = append(codes, f.Code)
	}

	return map[string]any{
		"part_number":     s.PartNumber,
		"step":            s.Step,
		"complete":        s.Complete,
		"users":           single(s.Configuration.Users),
		"card":            single(s.Configuration.Card),
		"biometric":       s.IDs(catalog.GroupBiometric),
		"network":         s.IDs(catalog.GroupNetwork),
		"features":        s.IDs(catalog.GroupFeatures),
		"network_default": s.Configuration.NetworkDefault(),
		"codes":           codes,
	}
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace has one event per flow step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the state after the last flow step.
	Final State `json:"final"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
