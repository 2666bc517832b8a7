package catalog

import "fmt"

// Group identifies one of the five selection groups.
type Group string

const (
	GroupUsers     Group = "users"
	GroupBiometric Group = "biometric"
	GroupCard      Group = "card"
	GroupNetwork   Group = "network"
	GroupFeatures  Group = "features"
)

// Groups lists every group in step order.
var Groups = []Group{GroupUsers, GroupBiometric, GroupCard, GroupNetwork, GroupFeatures}

// Valid reports whether g is one of the five known groups.
func (g Group) Valid() bool {
	switch g {
	case GroupUsers, GroupBiometric, GroupCard, GroupNetwork, GroupFeatures:
		return true
	}
	return false
}

// ParseGroup converts a group name into a Group.
func ParseGroup(s string) (Group, error) {
	g := Group(s)
	if !g.Valid() {
		return "", fmt.Errorf("unknown group %q: must be one of %v", s, Groups)
	}
	return g, nil
}

// Category tags card options with their sub-section.
type Category string

const (
	CategoryNone   Category = ""
	CategorySingle Category = "single"
	CategoryMulti  Category = "multi"
)

// Option is one selectable catalog entry.
//
// Description is presentation metadata and passes through untouched.
type Option struct {
	ID          string   `json:"id" yaml:"id"`
	Label       string   `json:"label" yaml:"label"`
	Code        string   `json:"code" yaml:"code"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Category    Category `json:"category,omitempty" yaml:"category,omitempty"`
	Sentinel    bool     `json:"sentinel,omitempty" yaml:"sentinel,omitempty"`
}
