// Package session runs one configurator session: a single writer applying
// named actions to a configuration store and a step sequencer.
//
// Actions arrive one at a time and each completes before the next is
// accepted. Every applied action is stamped with a monotonic logical
// sequence number and recorded in the session trace along with the step
// and part number it produced.
//
// Option identifiers are resolved against the catalog here. An unknown
// identifier fails with ErrUnknownOption and leaves the state untouched;
// the underlying store never sees it. A blocked advance or retreat is not
// an error: the trace entry is marked Blocked.
//
// Thread-safety: Session is not safe for concurrent use. The presentation
// layer owns it and serializes events.
package session
