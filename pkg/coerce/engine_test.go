package coerce

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-actorrunner/pkg/value"
)

func TestFromTextPriority(t *testing.T) {
	engine := New()
	cases := []struct {
		name string
		text string
		want value.Value
		rule string
	}{
		{name: "object", text: `{"a": 1}`, want: value.Object(value.Member{Key: "a", Value: value.Number(1)}), rule: RuleStructured},
		{name: "array", text: `[1, "b"]`, want: value.Array(value.Number(1), value.String("b")), rule: RuleStructured},
		{name: "malformed object", text: "{not json", want: value.String("{not json"), rule: RuleText},
		{name: "malformed array", text: "[1,", want: value.String("[1,"), rule: RuleText},
		{name: "out of range array", text: "[1e400]", want: value.String("[1e400]"), rule: RuleText},
		{name: "out of range object", text: `{"n": -1e999}`, want: value.String(`{"n": -1e999}`), rule: RuleText},
		{name: "true", text: "true", want: value.Bool(true), rule: RuleBoolean},
		{name: "false", text: "false", want: value.Bool(false), rule: RuleBoolean},
		{name: "capitalised bool stays text", text: "True", want: value.String("True"), rule: RuleText},
		{name: "integer", text: "7", want: value.Number(7), rule: RuleNumeric},
		{name: "zero", text: "0", want: value.Number(0), rule: RuleNumeric},
		{name: "one", text: "1", want: value.Number(1), rule: RuleNumeric},
		{name: "negative decimal", text: "-2.5", want: value.Number(-2.5), rule: RuleNumeric},
		{name: "exponent", text: "1e3", want: value.Number(1000), rule: RuleNumeric},
		{name: "zero padded", text: "007", want: value.Number(7), rule: RuleNumeric},
		{name: "phone number", text: "5551234567", want: value.Number(5551234567), rule: RuleNumeric},
		{name: "overflow", text: "1e400", want: value.String("1e400"), rule: RuleText},
		{name: "empty", text: "", want: value.String(""), rule: RuleText},
		{name: "padded number", text: " 12", want: value.String(" 12"), rule: RuleText},
		{name: "hex", text: "0x10", want: value.String("0x10"), rule: RuleText},
		{name: "null literal", text: "null", want: value.String("null"), rule: RuleText},
		{name: "plain", text: "hello", want: value.String("hello"), rule: RuleText},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, rule := engine.Infer("field", tc.text)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
			if got.Kind() != tc.want.Kind() {
				t.Fatalf("kind = %s, want %s", got.Kind(), tc.want.Kind())
			}
			if rule != tc.rule {
				t.Fatalf("rule = %s, want %s", rule, tc.rule)
			}
		})
	}
}

func TestScalarRoundTrip(t *testing.T) {
	values := []value.Value{
		value.String("hello world"),
		value.String("{not json"),
		value.String(""),
		value.Number(42),
		value.Number(-0.5),
		value.Number(1e21),
		value.Bool(true),
		value.Bool(false),
	}
	for _, v := range values {
		got := FromText(ToText(v))
		if got.Kind() != v.Kind() || !value.Equal(v, got) {
			t.Fatalf("round trip of %v (%s) produced %v (%s)", v.Any(), v.Kind(), got.Any(), got.Kind())
		}
	}
}

func TestDigitStringsBecomeNumbers(t *testing.T) {
	got := FromText(ToText(value.String("123")))
	if got.Kind() != value.KindNumber || got.Num() != 123 {
		t.Fatalf("expected digit string to round trip to number 123, got %v (%s)", got.Any(), got.Kind())
	}
}

func TestStructuredRoundTrip(t *testing.T) {
	values := []value.Value{
		value.Object(
			value.Member{Key: "startUrls", Value: value.Array(value.Object(value.Member{Key: "url", Value: value.String("https://example.com")}))},
			value.Member{Key: "maxPages", Value: value.Number(10)},
			value.Member{Key: "proxy", Value: value.Null()},
		),
		value.Array(),
		value.Object(),
		value.Array(value.Bool(false), value.Array(value.Number(1.25))),
	}
	for _, v := range values {
		text := ToText(v)
		got := FromText(text)
		if diff := cmp.Diff(v, got); diff != "" {
			t.Fatalf("structured round trip mismatch for %s (-want +got):\n%s", text, diff)
		}
	}
}

func TestToText(t *testing.T) {
	cases := []struct {
		in   value.Value
		want string
	}{
		{in: value.Null(), want: ""},
		{in: value.String("x"), want: "x"},
		{in: value.Number(5), want: "5"},
		{in: value.Bool(true), want: "true"},
		{in: value.Object(value.Member{Key: "a", Value: value.Number(1)}), want: "{\n  \"a\": 1\n}"},
		{in: value.Object(), want: "{}"},
	}
	for _, tc := range cases {
		if got := ToText(tc.in); got != tc.want {
			t.Fatalf("ToText(%v) = %q, want %q", tc.in.Any(), got, tc.want)
		}
	}
}

func TestWithRulesAppendsTextFallback(t *testing.T) {
	engine := New(WithRules(Boolean))
	if diff := cmp.Diff([]string{RuleBoolean, RuleText}, engine.Rules()); diff != "" {
		t.Fatalf("rules mismatch (-want +got):\n%s", diff)
	}
	got := engine.FromText("count", "7")
	if got.Kind() != value.KindString {
		t.Fatalf("expected numeric rule to be disabled, got %s", got.Kind())
	}
}

func TestCustomRuleSeesKey(t *testing.T) {
	keep := RuleFunc{RuleName: "keep-ids", Fn: func(key, text string) (value.Value, bool) {
		if key == "id" {
			return value.String(text), true
		}
		return value.Value{}, false
	}}
	engine := New(WithRules(append([]Rule{keep}, DefaultRules()...)...))

	if got := engine.FromText("id", "0042"); got.Kind() != value.KindString {
		t.Fatalf("expected id to stay a string, got %s", got.Kind())
	}
	if got := engine.FromText("count", "0042"); got.Kind() != value.KindNumber {
		t.Fatalf("expected count to become a number, got %s", got.Kind())
	}
}
