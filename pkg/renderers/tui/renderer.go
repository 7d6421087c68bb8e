package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-actorrunner/pkg/form"
	"github.com/goliatone/go-actorrunner/pkg/logger"
	"github.com/goliatone/go-actorrunner/pkg/report"
	"github.com/goliatone/go-actorrunner/pkg/session"
)

const (
	actionRun = iota
	actionEdit
	actionAddField
	actionBack
)

var actionLabels = []string{
	actionRun:      "Run actor",
	actionEdit:     "Edit fields",
	actionAddField: "Add field",
	actionBack:     "Back",
}

const (
	keepCurrentLabel = "Keep current value"
	customURLLabel   = "Enter a custom URL"
)

// Renderer drives a session from the terminal: it prompts for every field,
// runs the actor and prints the result.
type Renderer struct {
	driver      PromptDriver
	reporter    *report.Reporter
	suggestions []string
	logger      logger.Logger
	theme       Theme
}

// New constructs a TUI renderer with defaults (survey driver, text reports).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		suggestions: append([]string(nil), DefaultURLSuggestions...),
		logger:      logger.Nop(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if r.reporter == nil {
		reporter, err := report.New(report.FormatText)
		if err != nil {
			return nil, err
		}
		r.reporter = reporter
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// Run loads the schema when the session has not been started, collects field
// values and then loops on the action menu until the user goes back. A failed
// schema fetch is printed and returned. Failed runs are printed and the menu
// is shown again.
func (r *Renderer) Run(ctx context.Context, s *session.Session) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if s == nil {
		return ErrNoSession
	}
	if r.driver == nil {
		return errors.New("tui: prompt driver is nil")
	}

	if s.Phase() == session.PhaseInitial {
		if err := s.Start(ctx); err != nil {
			var sessErr *session.Error
			if errors.As(err, &sessErr) {
				_ = r.errorf(ctx, "%s", sessErr.Message)
			}
			return err
		}
	}
	if !s.Snapshot().SchemaLoaded {
		return session.ErrSchemaUnavailable
	}

	if err := r.showSchema(ctx, s); err != nil {
		return err
	}
	if err := r.promptFields(ctx, s); err != nil {
		return err
	}

	for {
		choice, err := r.driver.Select(ctx, SelectConfig{
			Message: "What next?",
			Options: actionLabels,
		})
		if err != nil {
			return err
		}

		switch choice {
		case actionRun:
			err = r.execute(ctx, s)
		case actionEdit:
			err = r.promptFields(ctx, s)
		case actionAddField:
			err = r.addField(ctx, s)
		case actionBack:
			leave, confirmErr := r.driver.Confirm(ctx, ConfirmConfig{
				Message: "Leave " + s.Snapshot().Title + "?",
				Default: true,
			})
			if confirmErr != nil {
				return confirmErr
			}
			if leave {
				return s.Back()
			}
		default:
			err = fmt.Errorf("tui: unknown action %d", choice)
		}
		if err != nil {
			return err
		}
	}
}

func (r *Renderer) showSchema(ctx context.Context, s *session.Session) error {
	var buf strings.Builder
	if err := r.reporter.Schema(&buf, s.Snapshot()); err != nil {
		return fmt.Errorf("tui: render schema: %w", err)
	}
	return r.info(ctx, buf.String())
}

func (r *Renderer) promptFields(ctx context.Context, s *session.Session) error {
	for _, field := range s.Fields() {
		text, err := r.promptField(ctx, field)
		if err != nil {
			return err
		}
		if text == field.DisplayText {
			continue
		}
		if err := r.edit(s, field.Key, text); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, field form.Field) (string, error) {
	message := fmt.Sprintf("%s (%s)", field.Key, field.TypeLabel)

	if field.URLField && len(r.suggestions) > 0 {
		options := make([]string, 0, len(r.suggestions)+2)
		options = append(options, keepCurrentLabel)
		options = append(options, r.suggestions...)
		options = append(options, customURLLabel)

		idx, err := r.driver.Select(ctx, SelectConfig{
			Message: message,
			Options: options,
			Help:    "Current: " + field.DisplayText,
		})
		if err != nil {
			return "", err
		}
		switch {
		case idx <= 0:
			return field.DisplayText, nil
		case idx <= len(r.suggestions):
			return r.suggestions[idx-1], nil
		}
	}

	if field.Multiline {
		return r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: field.DisplayText,
			Help:    field.Placeholder,
		})
	}
	return r.driver.Input(ctx, InputConfig{
		Message: message,
		Default: field.DisplayText,
		Help:    field.Placeholder,
	})
}

func (r *Renderer) addField(ctx context.Context, s *session.Session) error {
	key, err := r.driver.Input(ctx, InputConfig{
		Message:   "Field name",
		Validator: requireText,
	})
	if err != nil {
		return err
	}
	key = strings.TrimSpace(key)
	text, err := r.driver.Input(ctx, InputConfig{
		Message: fmt.Sprintf("%s value", key),
		Help:    "JSON objects and arrays, numbers and true/false are typed automatically",
	})
	if err != nil {
		return err
	}
	return r.edit(s, key, text)
}

func (r *Renderer) edit(s *session.Session, key, text string) error {
	field, err := s.Edit(key, text)
	if err != nil {
		return fmt.Errorf("tui: edit %q: %w", key, err)
	}
	r.logger.Debug("field updated", "key", key, "type", field.TypeLabel)
	return nil
}

func (r *Renderer) execute(ctx context.Context, s *session.Session) error {
	if err := r.info(ctx, "Running "+s.Snapshot().Title+"..."); err != nil {
		return err
	}

	err := s.Execute(ctx)
	var sessErr *session.Error
	if err != nil && !errors.As(err, &sessErr) {
		return err
	}
	if sessErr != nil {
		r.logger.Warn("run failed", "message", sessErr.Message)
	}

	var buf strings.Builder
	if err := r.reporter.Result(&buf, s.Snapshot()); err != nil {
		return fmt.Errorf("tui: render result: %w", err)
	}
	return r.info(ctx, buf.String())
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+strings.TrimRight(msg, "\n"))
}

func (r *Renderer) errorf(ctx context.Context, format string, args ...any) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+fmt.Sprintf(format, args...))
}

func requireText(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("a value is required")
	}
	return nil
}
