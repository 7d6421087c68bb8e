// Package actorrunner fetches an actor's input schema from a remote service,
// lets a caller edit the example values as text with type inference, and runs
// the actor with the typed input.
//
// The building blocks live under pkg/: value (ordered JSON values), coerce
// (text to value inference), form (field descriptors and input), session (the
// fetch-then-run state machine), client (the HTTP transport) and report
// (result presentation). This package wires them for the common cases.
package actorrunner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-actorrunner/pkg/actor"
	"github.com/goliatone/go-actorrunner/pkg/client"
	"github.com/goliatone/go-actorrunner/pkg/coerce"
	"github.com/goliatone/go-actorrunner/pkg/session"
	"github.com/goliatone/go-actorrunner/pkg/value"
)

// Actor identifies a remote job.
type Actor = actor.Actor

// Session aliases session.Session.
type Session = session.Session

// Snapshot aliases session.Snapshot.
type Snapshot = session.Snapshot

// NewClient exposes the HTTP client constructor from the top-level module.
func NewClient(baseURL string, options ...client.Option) (*client.Client, error) {
	return client.New(baseURL, options...)
}

// NewSession exposes the session constructor from the top-level module.
func NewSession(a Actor, credential string, c actor.Client, options ...session.Option) (*Session, error) {
	return session.New(a, credential, c, options...)
}

// Edit is one text edit applied to a form field.
type Edit struct {
	Key  string
	Text string
}

// ErrInvalidEdit is returned for malformed key=text pairs.
var ErrInvalidEdit = errors.New("actorrunner: invalid edit")

// ParseEdit splits "key=text" at the first '='. The text may be empty.
func ParseEdit(raw string) (Edit, error) {
	key, text, ok := strings.Cut(raw, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return Edit{}, fmt.Errorf("%w: %q, want key=value", ErrInvalidEdit, raw)
	}
	return Edit{Key: key, Text: text}, nil
}

// EditsFromValue turns an object into edits in member order. Each value is
// rendered to its display text, so it goes through the same coercion as a
// value typed into the form.
func EditsFromValue(v value.Value) ([]Edit, error) {
	if v.Kind() != value.KindObject {
		return nil, fmt.Errorf("%w: input must be an object, got %s", ErrInvalidEdit, v.Kind())
	}
	edits := make([]Edit, 0, v.Len())
	for _, m := range v.Members() {
		edits = append(edits, Edit{Key: m.Key, Text: coerce.ToText(m.Value)})
	}
	return edits, nil
}

// RunOnce starts s when needed, applies edits in order and executes the actor.
// The returned snapshot reflects the final state even when an error is
// returned.
func RunOnce(ctx context.Context, s *Session, edits []Edit) (Snapshot, error) {
	if s == nil {
		return Snapshot{}, errors.New("actorrunner: session is required")
	}
	if s.Phase() == session.PhaseInitial {
		if err := s.Start(ctx); err != nil {
			return s.Snapshot(), err
		}
	}
	for _, e := range edits {
		if _, err := s.Edit(e.Key, e.Text); err != nil {
			return s.Snapshot(), fmt.Errorf("actorrunner: edit %q: %w", e.Key, err)
		}
	}
	err := s.Execute(ctx)
	return s.Snapshot(), err
}
