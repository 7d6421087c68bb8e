// Package testsupport holds fakes and fixture helpers shared by package
// tests. Nothing here is meant for production use.
package testsupport

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-actorrunner/pkg/actor"
	"github.com/goliatone/go-actorrunner/pkg/value"
)

// ErrNotScripted is returned by Client when a call has no scripted handler.
var ErrNotScripted = errors.New("testsupport: call not scripted")

// Client is a scriptable actor.Client that records its calls.
type Client struct {
	FetchSchemaFunc func(ctx context.Context, actorID, credential string) (actor.SchemaResult, error)
	RunActorFunc    func(ctx context.Context, actorID, credential string, input value.Value) (actor.RunResult, error)

	mu          sync.Mutex
	schemaCalls int
	runCalls    int
	inputs      []value.Value
	credentials []string
}

var _ actor.Client = (*Client)(nil)

// FetchSchema records the call and delegates to FetchSchemaFunc.
func (c *Client) FetchSchema(ctx context.Context, actorID, credential string) (actor.SchemaResult, error) {
	c.mu.Lock()
	c.schemaCalls++
	c.credentials = append(c.credentials, credential)
	fn := c.FetchSchemaFunc
	c.mu.Unlock()

	if fn == nil {
		return actor.SchemaResult{}, ErrNotScripted
	}
	return fn(ctx, actorID, credential)
}

// RunActor records the call and delegates to RunActorFunc.
func (c *Client) RunActor(ctx context.Context, actorID, credential string, input value.Value) (actor.RunResult, error) {
	c.mu.Lock()
	c.runCalls++
	c.inputs = append(c.inputs, input)
	c.credentials = append(c.credentials, credential)
	fn := c.RunActorFunc
	c.mu.Unlock()

	if fn == nil {
		return actor.RunResult{}, ErrNotScripted
	}
	return fn(ctx, actorID, credential, input)
}

// SchemaCalls returns the number of FetchSchema calls.
func (c *Client) SchemaCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.schemaCalls
}

// RunCalls returns the number of RunActor calls.
func (c *Client) RunCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runCalls
}

// Inputs returns every input passed to RunActor, in call order.
func (c *Client) Inputs() []value.Value {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]value.Value(nil), c.inputs...)
}

// Credentials returns every credential seen, in call order.
func (c *Client) Credentials() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.credentials...)
}

// StaticSchema scripts FetchSchema to return res.
func StaticSchema(res actor.SchemaResult, err error) func(context.Context, string, string) (actor.SchemaResult, error) {
	return func(context.Context, string, string) (actor.SchemaResult, error) {
		return res, err
	}
}

// StaticRun scripts RunActor to return res.
func StaticRun(res actor.RunResult, err error) func(context.Context, string, string, value.Value) (actor.RunResult, error) {
	return func(context.Context, string, string, value.Value) (actor.RunResult, error) {
		return res, err
	}
}

// Gate blocks a scripted call until released, so tests can observe a call
// while it is in flight.
type Gate struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

// NewGate returns a gate that holds every call until Release.
func NewGate() *Gate {
	return &Gate{
		entered: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

// Entered is signalled each time a gated call starts waiting.
func (g *Gate) Entered() <-chan struct{} {
	return g.entered
}

// Release unblocks every waiting and future call.
func (g *Gate) Release() {
	g.once.Do(func() { close(g.release) })
}

// Wait blocks until Release or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	g.entered <- struct{}{}
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GatedRun wraps a scripted run so it waits on g first. Context errors are
// returned as transport errors, like the HTTP client does.
func GatedRun(g *Gate, res actor.RunResult, err error) func(context.Context, string, string, value.Value) (actor.RunResult, error) {
	return func(ctx context.Context, _ string, _ string, _ value.Value) (actor.RunResult, error) {
		if waitErr := g.Wait(ctx); waitErr != nil {
			return actor.RunResult{}, &actor.TransportError{Op: "run", Err: waitErr}
		}
		return res, err
	}
}

// GatedSchema is GatedRun for FetchSchema.
func GatedSchema(g *Gate, res actor.SchemaResult, err error) func(context.Context, string, string) (actor.SchemaResult, error) {
	return func(ctx context.Context, _ string, _ string) (actor.SchemaResult, error) {
		if waitErr := g.Wait(ctx); waitErr != nil {
			return actor.SchemaResult{}, &actor.TransportError{Op: "schema", Err: waitErr}
		}
		return res, err
	}
}
