package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-viewkit/pkg/i18n"
	"github.com/goliatone/go-viewkit/pkg/searchstring"
)

// MustLoadSearchConfig loads every column configuration file below dir.
func MustLoadSearchConfig(t *testing.T, dir string) searchstring.Config {
	t.Helper()

	cfg, err := searchstring.LoadFS(os.DirFS(dir))
	if err != nil {
		t.Fatalf("load search string config: %v", err)
	}
	return cfg
}

// MustLoadCatalog loads a translation tree laid out as
// <locale>/<namespace>.yaml below dir.
func MustLoadCatalog(t *testing.T, dir string) *i18n.Catalog {
	t.Helper()

	catalog, err := i18n.LoadFS(os.DirFS(dir))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return catalog
}

// MustLoadJSON decodes the JSON fixture at path into out.
func MustLoadJSON(t *testing.T, path string, out any) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("unmarshal fixture %s: %v", path, err)
	}
}

// WriteGolden writes value as indented JSON to a golden file when
// UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
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

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// AssertContainsInOrder fails unless every part occurs in got, each one after
// the previous match.
func AssertContainsInOrder(t *testing.T, got string, parts ...string) {
	t.Helper()

	rest := got
	for _, part := range parts {
		idx := strings.Index(rest, part)
		if idx < 0 {
			t.Fatalf("expected %q after previous matches in:\n%s", part, got)
		}
		rest = rest[idx+len(part):]
	}
}

// AssertNotContains fails when any part occurs in got.
func AssertNotContains(t *testing.T, got string, parts ...string) {
	t.Helper()

	for _, part := range parts {
		if strings.Contains(got, part) {
			t.Fatalf("expected %q to be absent from:\n%s", part, got)
		}
	}
}
