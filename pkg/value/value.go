package value

// Kind tags the runtime type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindObject
	KindArray
)

// String returns the lower-case kind name used as a field type label.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Structured reports whether the kind is an object or an array.
func (k Kind) Structured() bool {
	return k == KindObject || k == KindArray
}

// Member is a single key/value pair inside an object.
type Member struct {
	Key   string
	Value Value
}

// Value is the tagged union. The zero value is null.
type Value struct {
	kind    Kind
	str     string
	num     float64
	boolean bool
	members []Member
	items   []Value
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// String wraps a string.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number wraps a float64.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Bool wraps a boolean.
func Bool(b bool) Value {
	return Value{kind: KindBoolean, boolean: b}
}

// Object builds an object from members in order. A repeated key replaces the
// earlier value but keeps the earlier position.
func Object(members ...Member) Value {
	out := Value{kind: KindObject, members: make([]Member, 0, len(members))}
	for _, m := range members {
		out.members = setMember(out.members, m.Key, m.Value)
	}
	return out
}

// Array builds an array from items.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: append([]Value{}, items...)}
}

// Kind reports the runtime kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Str returns the string payload, or "" for non-string values.
func (v Value) Str() string {
	return v.str
}

// Num returns the numeric payload, or 0 for non-number values.
func (v Value) Num() float64 {
	return v.num
}

// Bool returns the boolean payload, or false for non-boolean values.
func (v Value) Bool() bool {
	return v.boolean
}

// Members returns a copy of the object members in order.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return append([]Member(nil), v.members...)
}

// Items returns a copy of the array items.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return append([]Value(nil), v.items...)
}

// Keys returns the object keys in order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Get looks up an object member.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Len returns the number of members or items; scalars report 0.
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return len(v.members)
	case KindArray:
		return len(v.items)
	default:
		return 0
	}
}

// With returns a copy of the object with key set to val. Existing keys keep
// their position; new keys are appended. Non-object receivers are treated as
// an empty object.
func (v Value) With(key string, val Value) Value {
	var base []Member
	if v.kind == KindObject {
		base = v.members
	}
	members := make([]Member, len(base), len(base)+1)
	copy(members, base)
	return Value{kind: KindObject, members: setMember(members, key, val)}
}

func setMember(members []Member, key string, val Value) []Member {
	for i := range members {
		if members[i].Key == key {
			members[i].Value = val
			return members
		}
	}
	return append(members, Member{Key: key, Value: val})
}

// Equal reports structural equality. Object comparison ignores key order.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindString:
		return a.str == b.str
	case KindNumber:
		return a.num == b.num
	case KindBoolean:
		return a.boolean == b.boolean
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for _, m := range a.members {
			other, ok := b.Get(m.Key)
			if !ok || !Equal(m.Value, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Equal lets go-cmp compare values structurally.
func (v Value) Equal(other Value) bool {
	return Equal(v, other)
}
