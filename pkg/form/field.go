// Package form turns an actor schema (an ordered map of example values) into
// renderable field descriptors and owns the mutable form input seeded from it.
package form

import (
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-actorrunner/pkg/coerce"
	"github.com/goliatone/go-actorrunner/pkg/value"
)

// MultilineThreshold is the display length above which a scalar field is
// rendered as a text area.
const MultilineThreshold = 50

const minRows = 3

// Field describes how one schema key should be rendered. Everything is derived
// from the value currently stored in the input, not from the schema example.
type Field struct {
	Key         string     `json:"key"`
	Kind        value.Kind `json:"-"`
	TypeLabel   string     `json:"type"`
	DisplayText string     `json:"displayText"`
	Multiline   bool       `json:"multiline"`
	URLField    bool       `json:"urlField"`
	Rows        int        `json:"rows,omitempty"`
	Placeholder string     `json:"placeholder,omitempty"`
}

// Describe builds the descriptor for key holding v.
func Describe(engine *coerce.Engine, key string, v value.Value) Field {
	display := engine.ToText(v)
	multiline := v.Kind().Structured() || utf8.RuneCountInString(display) > MultilineThreshold

	field := Field{
		Key:         key,
		Kind:        v.Kind(),
		TypeLabel:   v.Kind().String(),
		DisplayText: display,
		Multiline:   multiline,
		URLField:    IsURLKey(key),
		Placeholder: "Enter " + key + "...",
	}
	if multiline {
		field.Rows = max(minRows, strings.Count(display, "\n")+1)
	}
	return field
}

// IsURLKey reports whether key names a URL field.
func IsURLKey(key string) bool {
	return strings.Contains(strings.ToLower(key), "url")
}
