package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"":        InfoLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewRespectsLevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: WarnLevel, Output: &buf, JSON: true})

	l.Info("hidden")
	l.With("session_id", "s1").Warn("shown", "phase", "failed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message should be filtered at warn level: %s", out)
	}
	for _, want := range []string{"shown", "\"session_id\":\"s1\"", "\"phase\":\"failed\""} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %s", want, out)
		}
	}
}

func TestRestyAdapterFormats(t *testing.T) {
	var buf bytes.Buffer
	Resty(New(&Config{Level: DebugLevel, Output: &buf})).Debugf("status %d", 204)
	if !strings.Contains(buf.String(), "status 204") {
		t.Fatalf("expected formatted message, got %q", buf.String())
	}
}
