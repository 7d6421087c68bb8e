package value

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// FromAny converts the generic Go representation produced by encoding/json
// (and friends) into a Value. Map keys are sorted because Go maps carry no
// order.
func FromAny(x any) (Value, error) {
	switch typed := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return typed, nil
	case bool:
		return Bool(typed), nil
	case string:
		return String(typed), nil
	case int:
		return Number(float64(typed)), nil
	case int32:
		return Number(float64(typed)), nil
	case int64:
		return Number(float64(typed)), nil
	case uint:
		return Number(float64(typed)), nil
	case uint64:
		return Number(float64(typed)), nil
	case float32:
		return finite(float64(typed))
	case float64:
		return finite(typed)
	case json.Number:
		f, err := typed.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("value: json number %q: %w", typed, err)
		}
		return finite(f)
	case []any:
		items := make([]Value, 0, len(typed))
		for _, item := range typed {
			v, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return Value{kind: KindArray, items: items}, nil
	case []string:
		items := make([]Value, len(typed))
		for i, s := range typed {
			items[i] = String(s)
		}
		return Value{kind: KindArray, items: items}, nil
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for k := range typed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		members := make([]Member, 0, len(keys))
		for _, k := range keys {
			v, err := FromAny(typed[k])
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: k, Value: v})
		}
		return Value{kind: KindObject, members: members}, nil
	default:
		return Value{}, fmt.Errorf("value: unsupported type %T", x)
	}
}

func finite(f float64) (Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, fmt.Errorf("%w: %v", ErrNonFiniteNumber, f)
	}
	return Number(f), nil
}

// MustFromAny is FromAny that panics on unsupported input. Intended for
// literals in tests and fixtures.
func MustFromAny(x any) Value {
	v, err := FromAny(x)
	if err != nil {
		panic(err)
	}
	return v
}

// Any converts the value back into plain Go types: nil, string, float64,
// bool, map[string]any and []any.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBoolean:
		return v.boolean
	case KindObject:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Any()
		}
		return out
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Any()
		}
		return out
	default:
		return nil
	}
}
