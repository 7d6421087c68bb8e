package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-actorrunner/pkg/actor"
	"github.com/goliatone/go-actorrunner/pkg/coerce"
	"github.com/goliatone/go-actorrunner/pkg/form"
	"github.com/goliatone/go-actorrunner/pkg/logger"
	"github.com/goliatone/go-actorrunner/pkg/value"
)

// Phase is the lifecycle position of a session.
type Phase string

const (
	PhaseInitial       Phase = "initial"
	PhaseLoadingSchema Phase = "loading_schema"
	PhaseReady         Phase = "ready"
	PhaseRunning       Phase = "running"
	PhaseCompleted     Phase = "completed"
	PhaseFailed        Phase = "failed"
)

// Session owns the schema, form input, result and error for one actor. All
// state is guarded by mu, which is released while a remote call is pending.
type Session struct {
	mu sync.Mutex

	id            string
	actor         actor.Actor
	credential    string
	client        actor.Client
	engine        *coerce.Engine
	logger        logger.Logger
	onBack        func()
	onSelectActor func(actor.Actor)

	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	started    bool
	closed     bool

	phase   Phase
	info    *actor.Info
	model   *form.Model
	result  *actor.RunResult
	err     *Error
	running bool

	nextSub     int
	subscribers []subscriber
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// New creates a session for a. The credential is passed through to the
// client untouched.
func New(a actor.Actor, credential string, client actor.Client, options ...Option) (*Session, error) {
	if client == nil {
		return nil, errors.New("session: client is required")
	}
	if strings.TrimSpace(a.ID) == "" {
		return nil, errors.New("session: actor id is required")
	}

	s := &Session{
		id:         uuid.NewString(),
		actor:      a,
		credential: credential,
		client:     client,
		engine:     coerce.New(),
		logger:     logger.Nop(),
		phase:      PhaseInitial,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.logger = s.logger.With("session_id", s.id, "actor_id", a.ID)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Actor returns the actor the session was created for.
func (s *Session) Actor() actor.Actor {
	return s.actor
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Start fetches the schema and seeds the form. It blocks until the fetch
// resolves. A failed fetch moves the session to PhaseFailed and returns the
// *Error describing it.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.started {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.started = true
	s.phase = PhaseLoadingSchema
	gen := s.generation
	callCtx, stop := s.callContext(ctx)
	s.mu.Unlock()
	defer stop()

	s.notify()
	s.logger.Debug("fetching schema")

	res, err := s.fetchSchema(callCtx)

	s.mu.Lock()
	if s.staleLocked(gen) {
		s.mu.Unlock()
		s.logger.Debug("discarding schema response for closed session")
		return ErrClosed
	}
	if err != nil {
		s.err = schemaFetchError(err)
		s.phase = PhaseFailed
		sessErr := s.err
		s.mu.Unlock()

		s.logger.Warn("schema fetch failed", "error", err, "message", sessErr.Message)
		s.notify()
		return sessErr
	}
	s.info = res.Info
	s.model = form.NewModel(res.Schema, s.engine)
	s.err = nil
	s.phase = PhaseReady
	fields := s.model.Input().Len()
	s.mu.Unlock()

	s.logger.Info("schema loaded", "fields", fields)
	s.notify()
	return nil
}

// Execute runs the actor with the current input. It blocks until the run
// resolves. Calls made while a run is pending return ErrRunInFlight and have
// no effect. A failed run returns the *Error describing it; the form remains
// editable.
func (s *Session) Execute(ctx context.Context) error {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return ErrClosed
	case s.running:
		s.mu.Unlock()
		return ErrRunInFlight
	case s.model == nil:
		s.mu.Unlock()
		return ErrSchemaUnavailable
	}
	s.running = true
	s.phase = PhaseRunning
	s.err = nil
	s.result = nil
	gen := s.generation
	input := s.model.Input().Value()
	callCtx, stop := s.callContext(ctx)
	s.mu.Unlock()
	defer stop()

	s.notify()
	s.logger.Info("running actor", "fields", input.Len())

	result, err := s.runActor(callCtx, input)
	return s.finishRun(gen, result, err)
}

func (s *Session) finishRun(gen uint64, result actor.RunResult, runErr error) error {
	s.mu.Lock()
	defer func() {
		s.running = false
		s.mu.Unlock()
		s.notify()
	}()

	if s.staleLocked(gen) {
		s.logger.Debug("discarding run response for closed session")
		return ErrClosed
	}
	if runErr != nil {
		sessErr, degraded := executionError(runErr)
		s.err = sessErr
		s.result = degraded
		s.phase = PhaseFailed
		s.logger.Warn("run failed", "error", runErr, "message", sessErr.Message, "run_id", runIDOf(degraded))
		return sessErr
	}

	s.result = &result
	s.err = nil
	s.phase = PhaseCompleted
	s.logger.Info("run completed", "status", result.Status, "run_id", result.RunID)
	return nil
}

// Edit coerces text into a typed value for key and stores it. It returns the
// refreshed field descriptor.
func (s *Session) Edit(key, text string) (form.Field, error) {
	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		return form.Field{}, ErrClosed
	case s.model == nil:
		s.mu.Unlock()
		return form.Field{}, ErrSchemaUnavailable
	case s.running:
		s.mu.Unlock()
		return form.Field{}, ErrRunInFlight
	}
	if _, err := s.model.Edit(key, text); err != nil {
		s.mu.Unlock()
		return form.Field{}, err
	}
	field, _ := s.model.Field(key)
	s.mu.Unlock()

	s.logger.Debug("field edited", "key", key, "type", field.TypeLabel)
	s.notify()
	return field, nil
}

// Fields returns the current field descriptors in input order, or nil
// before the schema is loaded.
func (s *Session) Fields() []form.Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model == nil {
		return nil
	}
	return s.model.Fields()
}

// Input returns the current form input as an ordered object.
func (s *Session) Input() value.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model == nil {
		return value.Object()
	}
	return s.model.Input().Value()
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every state change. The
// returned function removes the subscription. Callbacks run on the goroutine
// that caused the change, outside the session lock.
func (s *Session) Subscribe(fn func(Snapshot)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	s.nextSub++
	id := s.nextSub
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Back closes the session and invokes the OnBack callback. It is rejected
// while a run is pending.
func (s *Session) Back() error {
	if err := s.leave(); err != nil {
		return err
	}
	if s.onBack != nil {
		s.onBack()
	}
	return nil
}

// SelectActor closes the session and hands a to the OnSelectActor callback,
// which is expected to start a fresh session.
func (s *Session) SelectActor(a actor.Actor) error {
	if err := s.leave(); err != nil {
		return err
	}
	if s.onSelectActor != nil {
		s.onSelectActor(a)
	}
	return nil
}

func (s *Session) leave() error {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if running {
		return ErrRunInFlight
	}
	return s.Close()
}

// Close tears the session down. Pending calls are cancelled and their
// responses ignored. Close is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.generation++
	s.subscribers = nil
	s.cancel()
	s.logger.Debug("session closed")
	return nil
}

func (s *Session) staleLocked(gen uint64) bool {
	return s.closed || s.generation != gen
}

// callContext derives a context that ends with either the caller's context
// or the session.
func (s *Session) callContext(ctx context.Context) (context.Context, func()) {
	if ctx == nil {
		ctx = context.Background()
	}
	callCtx, cancel := context.WithCancel(ctx)
	stopAfter := context.AfterFunc(s.ctx, cancel)
	return callCtx, func() {
		stopAfter()
		cancel()
	}
}

func (s *Session) fetchSchema(ctx context.Context) (res actor.SchemaResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("actor client panicked during schema fetch", "panic", r)
			err = &panicError{value: r}
		}
	}()
	return s.client.FetchSchema(ctx, s.actor.ID, s.credential)
}

func (s *Session) runActor(ctx context.Context, input value.Value) (res actor.RunResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("actor client panicked during run", "panic", r)
			err = &panicError{value: r}
		}
	}()
	return s.client.RunActor(ctx, s.actor.ID, s.credential, input)
}

func (s *Session) notify() {
	s.mu.Lock()
	if len(s.subscribers) == 0 {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	subs := append([]subscriber(nil), s.subscribers...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}

func runIDOf(res *actor.RunResult) string {
	if res == nil {
		return ""
	}
	return res.RunID
}
