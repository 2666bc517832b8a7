// Package store provides the SQLite-backed ledger of issued quotes.
//
// Each row records the part number handed to order processing together with
// the normalized selections and their fingerprint. The ledger is append-only:
// writing a quote whose ref already exists is a no-op.
//
// The ledger never restores a configuration session. It is an output record,
// not session state.
//
// # Ordering
//
// Listings are ordered by rowid, which is write order since rows are never
// deleted. The seq column is the issuing session's logical clock and restarts
// with every session, so it is not comparable across quotes. created_at is
// informational and never used for ordering.
//
// # Connection
//
// Connections are opened with _journal_mode=WAL, _synchronous=NORMAL and
// _busy_timeout=5000 in the DSN. Schema upgrades are keyed on
// PRAGMA user_version and run in a single transaction.
//
// Selections are stored as canonical JSON produced by internal/ir.
package store
