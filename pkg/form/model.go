package form

import (
	"errors"
	"strings"

	"github.com/goliatone/go-actorrunner/pkg/coerce"
	"github.com/goliatone/go-actorrunner/pkg/value"
)

// ErrEmptyKey is returned when Edit is called without a field key.
var ErrEmptyKey = errors.New("form: field key is required")

// Model pairs the fetched schema with the editable input seeded from it.
type Model struct {
	engine *coerce.Engine
	schema value.Value
	input  *Input
}

// NewModel seeds a model from schema. A schema that is not an object is
// treated as empty. A nil engine selects the default coercion rules.
func NewModel(schema value.Value, engine *coerce.Engine) *Model {
	if engine == nil {
		engine = coerce.New()
	}
	if schema.Kind() != value.KindObject {
		schema = value.Object()
	}
	return &Model{
		engine: engine,
		schema: schema,
		input:  newInput(schema),
	}
}

// Schema returns the schema the model was seeded from.
func (m *Model) Schema() value.Value {
	return m.schema
}

// Input returns the live input. Callers must treat it as read-only.
func (m *Model) Input() *Input {
	return m.input
}

// Empty reports whether the schema declared no fields.
func (m *Model) Empty() bool {
	return m.schema.Len() == 0
}

// Fields returns a descriptor for every input key: schema keys in schema
// order, then keys added through Edit in the order they were added.
func (m *Model) Fields() []Field {
	keys := m.input.Keys()
	fields := make([]Field, 0, len(keys))
	for _, key := range keys {
		v, _ := m.input.Get(key)
		fields = append(fields, Describe(m.engine, key, v))
	}
	return fields
}

// Field returns the descriptor for a single key.
func (m *Model) Field(key string) (Field, bool) {
	v, ok := m.input.Get(key)
	if !ok {
		return Field{}, false
	}
	return Describe(m.engine, key, v), true
}

// Edit coerces text and stores the result under key. Unknown keys are added;
// keys are never removed.
func (m *Model) Edit(key, text string) (value.Value, error) {
	if strings.TrimSpace(key) == "" {
		return value.Value{}, ErrEmptyKey
	}
	v := m.engine.FromText(key, text)
	m.input.set(key, v)
	return v, nil
}
