package form

import (
	"github.com/goliatone/go-actorrunner/pkg/value"
)

// Input is the ordered, mutable set of current field values. It can only be
// changed through Model.Edit.
type Input struct {
	keys   []string
	values map[string]value.Value
}

func newInput(seed value.Value) *Input {
	in := &Input{values: make(map[string]value.Value, seed.Len())}
	for _, m := range seed.Members() {
		in.set(m.Key, m.Value)
	}
	return in
}

func (in *Input) set(key string, v value.Value) {
	if _, exists := in.values[key]; !exists {
		in.keys = append(in.keys, key)
	}
	in.values[key] = v
}

// Get returns the current value for key.
func (in *Input) Get(key string) (value.Value, bool) {
	if in == nil {
		return value.Value{}, false
	}
	v, ok := in.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (in *Input) Keys() []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in.keys...)
}

// Len returns the number of keys.
func (in *Input) Len() int {
	if in == nil {
		return 0
	}
	return len(in.keys)
}

// Value returns the input as an immutable ordered object.
func (in *Input) Value() value.Value {
	if in == nil {
		return value.Object()
	}
	members := make([]value.Member, 0, len(in.keys))
	for _, key := range in.keys {
		members = append(members, value.Member{Key: key, Value: in.values[key]})
	}
	return value.Object(members...)
}

// MarshalJSON encodes the input as an ordered JSON object.
func (in *Input) MarshalJSON() ([]byte, error) {
	return in.Value().MarshalJSON()
}
