package session

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-actorrunner/pkg/actor"
)

var (
	// ErrRunInFlight is returned when Execute or Edit is called while a run is
	// still pending. The call has no effect.
	ErrRunInFlight = errors.New("session: run already in flight")
	// ErrSchemaUnavailable is returned when the schema has not been loaded,
	// either because Start has not finished or because the fetch failed.
	ErrSchemaUnavailable = errors.New("session: schema not loaded")
	// ErrClosed is returned after Close, and by calls whose response arrived
	// after the session was closed.
	ErrClosed = errors.New("session: closed")
	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("session: already started")
)

// User-facing messages.
const (
	MessageSchemaFetchFailed     = "Failed to fetch schema"
	MessageRunFailed             = "Failed to run actor"
	MessageExecutionFailedPrefix = "Actor execution failed: "
	MessageNetworkError          = "Network error: Failed to connect to server. Please check if the backend is running."
)

// ErrorKind classifies a session error.
type ErrorKind string

const (
	// ErrorKindSchemaFetch marks a failed schema load. The session has no form.
	ErrorKindSchemaFetch ErrorKind = "schema_fetch"
	// ErrorKindExecution marks a failed run. The session stays usable.
	ErrorKindExecution ErrorKind = "execution"
)

// Error is the user-facing outcome of a failed remote call.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Recoverable reports whether the session can still execute after e.
func (e *Error) Recoverable() bool {
	return e.Kind == ErrorKindExecution
}

type panicError struct {
	value any
}

func (p *panicError) Error() string {
	return fmt.Sprintf("session: client panic: %v", p.value)
}

func schemaFetchError(err error) *Error {
	msg := MessageSchemaFetchFailed
	if respErr, ok := actor.AsResponseError(err); ok && respErr.Message != "" {
		msg = respErr.Message
	}
	return &Error{Kind: ErrorKindSchemaFetch, Message: msg, Cause: err}
}

// executionError maps a run failure onto its message. When the failure still
// identifies a run, the degraded run details are returned alongside.
func executionError(err error) (*Error, *actor.RunResult) {
	respErr, ok := actor.AsResponseError(err)
	if !ok {
		var p *panicError
		if errors.As(err, &p) {
			return &Error{Kind: ErrorKindExecution, Message: MessageRunFailed, Cause: err}, nil
		}
		return &Error{Kind: ErrorKindExecution, Message: MessageNetworkError, Cause: err}, nil
	}

	msg := MessageRunFailed
	switch {
	case respErr.StatusMessage != "":
		msg = MessageExecutionFailedPrefix + respErr.StatusMessage
	case respErr.Message != "":
		msg = respErr.Message
	}

	var degraded *actor.RunResult
	if respErr.RunID != "" {
		res := respErr.Result().Degraded()
		degraded = &res
	}
	return &Error{Kind: ErrorKindExecution, Message: msg, Cause: err}, degraded
}
