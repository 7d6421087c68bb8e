// Package session drives the two-phase lifecycle of running an actor: fetch
// the input schema, let the caller edit the seeded form, execute, and keep the
// latest result or error.
//
// Phases move as follows:
//
//	initial -> loading_schema -> ready | failed
//	ready | completed | failed(with schema) -> running -> completed | failed
//
// A failed schema fetch leaves the session without a form; only a new
// session can recover from it. A failed execution keeps the form editable and
// Execute may be called again. At most one execution is in flight at a time,
// and responses that resolve after Close are discarded.
//
// Remote failures never escape as panics. Start and Execute return a *Error
// carrying the user-facing message, and the same error is visible through
// Snapshot until the next attempt replaces it.
package session
