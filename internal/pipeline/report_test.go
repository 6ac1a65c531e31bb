package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/dgallion1/doclint/internal/check"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestNewReport_CountsErrorsOnly(t *testing.T) {
	rep := NewReport("a.md", "x", []check.CheckError{
		{RuleID: "A", Severity: check.SeverityError},
		{RuleID: "B", Severity: check.SeverityWarning},
		{RuleID: "C", Severity: check.SeverityError},
	})
	if rep.ErrorCount != 2 {
		t.Errorf("expected 2 errors, got %d", rep.ErrorCount)
	}
	if len(rep.Diagnostics) != 3 {
		t.Errorf("expected 3 diagnostics, got %d", len(rep.Diagnostics))
	}
}

func TestNewReport_EmptyDiagnosticsEncodeAsArray(t *testing.T) {
	b, err := json.Marshal(NewReport("a.md", "", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := out["diagnostics"].([]any); !ok {
		t.Errorf("expected diagnostics array, got %s", b)
	}
	if _, ok := out["run_id"]; ok {
		t.Errorf("expected run_id to be omitted, got %s", b)
	}
}
