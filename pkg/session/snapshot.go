package session

import (
	"github.com/goliatone/go-actorrunner/pkg/actor"
	"github.com/goliatone/go-actorrunner/pkg/form"
	"github.com/goliatone/go-actorrunner/pkg/value"
)

// Snapshot is a point-in-time copy of the session state for renderers.
type Snapshot struct {
	ID           string
	Actor        actor.Actor
	Info         *actor.Info
	Title        string
	Description  string
	Phase        Phase
	Fields       []form.Field
	Input        value.Value
	Result       *actor.RunResult
	Err          *Error
	Message      string
	Running      bool
	SchemaLoaded bool
	EmptySchema  bool
}

// CanExecute reports whether Execute would start a run.
func (s Snapshot) CanExecute() bool {
	return s.SchemaLoaded && !s.Running
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:           s.id,
		Actor:        s.actor,
		Title:        s.titleLocked(),
		Description:  s.actor.Description,
		Phase:        s.phase,
		Input:        value.Object(),
		Running:      s.running,
		SchemaLoaded: s.model != nil,
	}
	if s.info != nil {
		info := *s.info
		snap.Info = &info
		if info.Description != "" {
			snap.Description = info.Description
		}
	}
	if s.model != nil {
		snap.Fields = s.model.Fields()
		snap.Input = s.model.Input().Value()
		snap.EmptySchema = s.model.Empty()
	}
	if s.result != nil {
		res := *s.result
		snap.Result = &res
	}
	if s.err != nil {
		e := *s.err
		snap.Err = &e
		snap.Message = e.Message
	}
	return snap
}

func (s *Session) titleLocked() string {
	switch {
	case s.info != nil && s.info.Title != "":
		return s.info.Title
	case s.actor.Title != "":
		return s.actor.Title
	case s.actor.Name != "":
		return s.actor.Name
	default:
		return s.actor.ID
	}
}
