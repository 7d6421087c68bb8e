package coerce

import (
	"github.com/goliatone/go-actorrunner/pkg/value"
)

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the inference chain. A trailing Text rule is appended
// when missing so FromText always produces a value.
func WithRules(rules ...Rule) Option {
	return func(e *Engine) {
		if len(rules) == 0 {
			return
		}
		e.rules = append([]Rule(nil), rules...)
	}
}

// Engine converts between display text and typed values.
type Engine struct {
	rules []Rule
}

// New returns an Engine using DefaultRules unless overridden.
func New(options ...Option) *Engine {
	e := &Engine{rules: DefaultRules()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if last := e.rules[len(e.rules)-1]; last.Name() != RuleText {
		e.rules = append(e.rules, Text)
	}
	return e
}

// Rules returns the names of the configured rules in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name()
	}
	return names
}

// FromText infers a typed value for text entered into the field key.
func (e *Engine) FromText(key, text string) value.Value {
	v, _ := e.Infer(key, text)
	return v
}

// Infer is FromText that also reports which rule matched.
func (e *Engine) Infer(key, text string) (value.Value, string) {
	for _, rule := range e.rules {
		if v, ok := rule.Apply(key, text); ok {
			return v, rule.Name()
		}
	}
	return value.String(text), RuleText
}

// ToText renders a value for editing. Objects and arrays become indented
// JSON, null becomes empty text and scalars are printed directly.
func (e *Engine) ToText(v value.Value) string {
	return ToText(v)
}

var defaultEngine = New()

// FromText runs the default rule chain.
func FromText(text string) value.Value {
	return defaultEngine.FromText("", text)
}

// ToText renders v using the default formatting.
func ToText(v value.Value) string {
	switch v.Kind() {
	case value.KindNull:
		return ""
	case value.KindString:
		return v.Str()
	case value.KindNumber:
		return value.FormatNumber(v.Num())
	case value.KindBoolean:
		if v.Bool() {
			return "true"
		}
		return "false"
	default:
		out, err := value.Indent(v)
		if err != nil {
			return ""
		}
		return out
	}
}
