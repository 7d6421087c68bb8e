// Package actor defines the remote actor service as seen by the runner: the
// actor identity, the schema and run payloads, the Client contract and the
// typed errors a Client returns.
package actor

import (
	"context"

	"github.com/goliatone/go-actorrunner/pkg/value"
)

// Actor identifies a remote job. It is supplied by the caller and never
// changes for the lifetime of a session.
type Actor struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Info is the actor metadata returned alongside the schema.
type Info struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// SchemaResult is a successful schema fetch.
type SchemaResult struct {
	Schema value.Value
	Info   *Info
}

// RunStats carries run statistics reported by the service.
type RunStats struct {
	RunTimeSecs float64 `json:"runTimeSecs"`
}

// RunResult is the outcome of one run. Payload holds the complete response
// object; the other fields are extracted from it for convenience.
type RunResult struct {
	Status  string
	Stats   *RunStats
	Results value.Value
	RunID   string
	Success *bool
	Error   bool
	Payload value.Value
}

// Output returns the run output: the results member when present and not
// null, otherwise the whole payload.
func (r RunResult) Output() value.Value {
	if !r.Results.IsNull() {
		return r.Results
	}
	return r.Payload
}

// Degraded marks the result as belonging to a failed call. The payload gains
// success=false and error=true while keeping every other member.
func (r RunResult) Degraded() RunResult {
	failed := false
	r.Success = &failed
	r.Error = true
	r.Payload = r.Payload.With("success", value.Bool(false)).With("error", value.Bool(true))
	return r
}

// Client is the remote actor service. Implementations return *ResponseError
// for non-2xx responses and *TransportError when no usable response arrived.
type Client interface {
	FetchSchema(ctx context.Context, actorID, credential string) (SchemaResult, error)
	RunActor(ctx context.Context, actorID, credential string, input value.Value) (RunResult, error)
}
