package tui

import (
	"github.com/goliatone/go-actorrunner/pkg/logger"
	"github.com/goliatone/go-actorrunner/pkg/report"
)

// DefaultURLSuggestions are offered for URL fields when none are configured.
var DefaultURLSuggestions = []string{
	"https://httpbin.org/json",
	"https://jsonplaceholder.typicode.com/posts/1",
	"https://api.github.com/users/octocat",
	"https://httpbin.org/html",
	"https://reqres.in/api/users/1",
}

// Theme captures optional formatting hints the driver can apply when printing
// messages. Keep minimal to avoid coupling renderer logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithReporter overrides how schemas and results are printed.
func WithReporter(reporter *report.Reporter) Option {
	return func(r *Renderer) {
		if reporter != nil {
			r.reporter = reporter
		}
	}
}

// WithURLSuggestions replaces the suggestions offered for URL fields. An
// empty list disables suggestions.
func WithURLSuggestions(urls []string) Option {
	return func(r *Renderer) {
		r.suggestions = append([]string(nil), urls...)
	}
}

// WithLogger attaches a logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
