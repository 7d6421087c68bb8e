package actor

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-actorrunner/pkg/value"
)

// ResponseError is a non-2xx answer from the service. Message is the server
// "error" field, StatusMessage the execution status message and RunID the run
// identifier when the service reported one.
type ResponseError struct {
	StatusCode    int
	Message       string
	StatusMessage string
	RunID         string
	Payload       value.Value
}

func (e *ResponseError) Error() string {
	switch {
	case e.StatusMessage != "":
		return fmt.Sprintf("actor: status %d: %s", e.StatusCode, e.StatusMessage)
	case e.Message != "":
		return fmt.Sprintf("actor: status %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("actor: unexpected status %d", e.StatusCode)
	}
}

// Result returns the run details carried by the error payload.
func (e *ResponseError) Result() RunResult {
	return runResultFrom(e.Payload)
}

// TransportError wraps failures where no usable response was received:
// connection errors, cancelled requests and undecodable bodies.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("actor: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AsResponseError unwraps err into a *ResponseError.
func AsResponseError(err error) (*ResponseError, bool) {
	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr, true
	}
	return nil, false
}
