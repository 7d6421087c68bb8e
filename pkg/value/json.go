package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var (
	// ErrInvalidJSON is returned by Parse when the input is not a JSON document.
	ErrInvalidJSON = errors.New("value: invalid JSON")
	// ErrNonFiniteNumber is returned by Parse when a number literal does not
	// fit in a float64, such as 1e400.
	ErrNonFiniteNumber = errors.New("value: number out of range")
)

var indentOptions = &pretty.Options{Indent: "  "}

// Parse decodes a JSON document, keeping object keys in document order.
func Parse(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Value{}, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(data))
}

// ParseString is Parse for string input.
func ParseString(s string) (Value, error) {
	return Parse([]byte(s))
}

func fromResult(r gjson.Result) (Value, error) {
	switch r.Type {
	case gjson.String:
		return String(r.Str), nil
	case gjson.Number:
		if math.IsInf(r.Num, 0) || math.IsNaN(r.Num) {
			return Value{}, fmt.Errorf("%w: %s", ErrNonFiniteNumber, r.Raw)
		}
		return Number(r.Num), nil
	case gjson.True:
		return Bool(true), nil
	case gjson.False:
		return Bool(false), nil
	case gjson.JSON:
		var err error
		if r.IsArray() {
			items := make([]Value, 0)
			r.ForEach(func(_, item gjson.Result) bool {
				var v Value
				if v, err = fromResult(item); err != nil {
					return false
				}
				items = append(items, v)
				return true
			})
			if err != nil {
				return Value{}, err
			}
			return Value{kind: KindArray, items: items}, nil
		}
		members := make([]Member, 0)
		r.ForEach(func(key, item gjson.Result) bool {
			var v Value
			if v, err = fromResult(item); err != nil {
				return false
			}
			members = setMember(members, key.Str, v)
			return true
		})
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindObject, members: members}, nil
	default:
		return Null(), nil
	}
}

// MarshalJSON encodes the value compactly, preserving object key order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.appendJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes through Parse so key order survives.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Indent renders the value as two-space indented JSON without a trailing
// newline.
func Indent(v Value) (string, error) {
	compact, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}
	out := pretty.PrettyOptions(compact, indentOptions)
	return string(bytes.TrimRight(out, "\n")), nil
}

func (v Value) appendJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindString:
		buf.Write(quote(v.str))
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return fmt.Errorf("value: unsupported number %v", v.num)
		}
		buf.WriteString(FormatNumber(v.num))
	case KindBoolean:
		buf.WriteString(strconv.FormatBool(v.boolean))
	case KindObject:
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(quote(m.Key))
			buf.WriteByte(':')
			if err := m.Value.appendJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.appendJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		return fmt.Errorf("value: unknown kind %d", v.kind)
	}
	return nil
}

func quote(s string) []byte {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return bytes.TrimRight(b.Bytes(), "\n")
}

// FormatNumber renders a number the way a JSON document would carry it:
// integers without a fraction, plain decimals in the common range and
// exponent notation outside it.
func FormatNumber(n float64) string {
	if n == 0 {
		return "0"
	}
	abs := math.Abs(n)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return trimExponent(strconv.FormatFloat(n, 'g', -1, 64))
}

// trimExponent drops the zero padding strconv puts in two-digit exponents,
// so 1e-07 reads 1e-7.
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	digits := strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return s[:i+2] + digits
}
