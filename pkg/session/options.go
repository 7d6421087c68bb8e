package session

import (
	"github.com/goliatone/go-actorrunner/pkg/actor"
	"github.com/goliatone/go-actorrunner/pkg/coerce"
	"github.com/goliatone/go-actorrunner/pkg/logger"
)

// Option configures a Session.
type Option func(*Session)

// WithEngine overrides the coercion engine used for edits and display text.
func WithEngine(engine *coerce.Engine) Option {
	return func(s *Session) {
		if engine != nil {
			s.engine = engine
		}
	}
}

// WithLogger attaches a logger. Session and actor ids are added as fields.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// WithOnBack registers the navigation callback invoked by Back.
func WithOnBack(fn func()) Option {
	return func(s *Session) {
		s.onBack = fn
	}
}

// WithOnSelectActor registers the navigation callback invoked by SelectActor.
func WithOnSelectActor(fn func(actor.Actor)) Option {
	return func(s *Session) {
		s.onSelectActor = fn
	}
}
