package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-actorrunner/pkg/actor"
	"github.com/goliatone/go-actorrunner/pkg/value"
)

// MustValue parses a JSON literal into a Value, failing the test on error.
func MustValue(t *testing.T, raw string) value.Value {
	t.Helper()
	v, err := value.ParseString(raw)
	if err != nil {
		t.Fatalf("parse value %q: %v", raw, err)
	}
	return v
}

// SchemaResult decodes a schema response body the way the HTTP client does.
func SchemaResult(t *testing.T, body string) actor.SchemaResult {
	t.Helper()
	res, err := actor.DecodeSchemaResult([]byte(body))
	if err != nil {
		t.Fatalf("decode schema fixture: %v", err)
	}
	return res
}

// RunResult decodes a run response body the way the HTTP client does.
func RunResult(t *testing.T, body string) actor.RunResult {
	t.Helper()
	res, err := actor.DecodeRunResult([]byte(body))
	if err != nil {
		t.Fatalf("decode run fixture: %v", err)
	}
	return res
}

// ResponseError builds the error a client returns for a non-2xx response.
func ResponseError(status int, body string) error {
	return actor.DecodeResponseError(status, []byte(body))
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
