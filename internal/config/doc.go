// Package config holds the in-progress configuration of one configurator
// session and the only operations allowed to change it.
//
// Store is the single write surface. Its operations are total: they never
// fail and never validate that an option belongs to the catalog. Resolving
// identifiers against the catalog is the caller's job (see package session).
//
// Selection semantics per group:
//
//	users      optional single choice, replaced unconditionally
//	card       optional single choice across both categories
//	biometric  set; the sentinel is mutually exclusive with real options
//	network    set; selecting the sentinel clears it, the sentinel is never stored
//	features   set preserving insertion order
package config
