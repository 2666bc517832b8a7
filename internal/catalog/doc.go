// Package catalog holds the static option catalog for the ACTAtek configurator.
//
// The catalog is five ordered lists of options, one per selection group.
// It is declared in CUE (catalog.cue, embedded) and compiled through the
// CUE Go API at startup. Position within a list is significant: the part
// number composer orders multi-select groups by it.
//
// Options are immutable values. Every accessor returns copies, so no caller
// can mutate the canonical lists.
//
// # Sentinels
//
// The biometric and network groups each carry exactly one sentinel option
// ("none" and "lan" in the default catalog). A sentinel stands for "no real
// selection" and always has an empty code. Sentinel status is a property of
// the option itself (Option.Sentinel), never inferred from its identifier.
package catalog
