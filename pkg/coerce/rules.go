package coerce

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-actorrunner/pkg/value"
)

// Rule is one step of the inference chain. Apply reports ok=false to let the
// next rule try. The field key is passed for context; the built-in rules
// ignore it.
type Rule interface {
	Name() string
	Apply(key, text string) (value.Value, bool)
}

// RuleFunc adapts a function into a Rule.
type RuleFunc struct {
	RuleName string
	Fn       func(key, text string) (value.Value, bool)
}

// Name returns the rule name.
func (r RuleFunc) Name() string { return r.RuleName }

// Apply runs the wrapped function.
func (r RuleFunc) Apply(key, text string) (value.Value, bool) {
	if r.Fn == nil {
		return value.Value{}, false
	}
	return r.Fn(key, text)
}

const (
	RuleStructured = "structured"
	RuleBoolean    = "boolean"
	RuleNumeric    = "numeric"
	RuleText       = "text"
)

var numericPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// Structured parses text that starts with { or [ as JSON.
var Structured Rule = RuleFunc{RuleName: RuleStructured, Fn: structured}

// Boolean matches the exact literals true and false.
var Boolean Rule = RuleFunc{RuleName: RuleBoolean, Fn: boolean}

// Numeric matches non-empty decimal numbers with an optional exponent.
var Numeric Rule = RuleFunc{RuleName: RuleNumeric, Fn: numeric}

// Text always matches and keeps the input as a string.
var Text Rule = RuleFunc{RuleName: RuleText, Fn: text}

// DefaultRules returns the inference chain in priority order.
func DefaultRules() []Rule {
	return []Rule{Structured, Boolean, Numeric, Text}
}

func structured(_ string, text string) (out value.Value, ok bool) {
	if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") {
		return value.Value{}, false
	}
	defer func() {
		if recover() != nil {
			out, ok = value.Value{}, false
		}
	}()
	parsed, err := value.ParseString(text)
	if err != nil {
		return value.Value{}, false
	}
	return parsed, true
}

func boolean(_ string, text string) (value.Value, bool) {
	switch text {
	case "true":
		return value.Bool(true), true
	case "false":
		return value.Bool(false), true
	default:
		return value.Value{}, false
	}
}

func numeric(_ string, text string) (value.Value, bool) {
	if text == "" || !numericPattern.MatchString(text) {
		return value.Value{}, false
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return value.Value{}, false
	}
	return value.Number(n), true
}

func text(_ string, text string) (value.Value, bool) {
	return value.String(text), true
}
