// Package testsupport holds fixture and golden helpers shared by package tests.
package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-doublefield/pkg/field"
)

// MustLoadItems reads a JSON fixture of [{"first": "...", "second": "..."}]
// values into an ItemList.
func MustLoadItems(t *testing.T, path string) field.ItemList {
	t.Helper()

	items, err := LoadItems(path)
	if err != nil {
		t.Fatalf("load items: %v", err)
	}
	return items
}

// LoadItems reads an item fixture, returning an error for callers managing
// setup outside of *testing.T.
func LoadItems(path string) (field.ItemList, error) {
	if path == "" {
		return nil, errors.New("testsupport: items path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read items: %w", err)
	}
	var out []field.Item
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal items: %w", err)
	}
	return field.NewItemList(out...), nil
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

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// AssertGolden compares got against the golden file at path, ignoring
// surrounding whitespace. With UPDATE_GOLDENS set the golden is rewritten.
func AssertGolden(t *testing.T, path string, got []byte) {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return
	}
	want := strings.TrimSpace(string(MustReadGolden(t, path)))
	if diff := cmp.Diff(want, strings.TrimSpace(string(got))); diff != "" {
		t.Fatalf("golden mismatch for %s (-want +got):\n%s", path, diff)
	}
}
