// Package testutil holds fixtures shared by package tests: a reproducible
// wall clock and helpers that drive a session to an issued quote.
package testutil
