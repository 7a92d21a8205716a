package location

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "outcodes.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolve(t *testing.T) {
	r, err := LoadTable(writeTable(t, `[
		{"outcode": "LS26", "code": 1543},
		{"outcode": "WF3", "code": 2789}
	]`))
	if err != nil {
		t.Fatal(err)
	}

	code, err := r.Resolve("LS26")
	if err != nil {
		t.Fatal(err)
	}
	if code != 1543 {
		t.Errorf("LS26 = %d, want 1543", code)
	}

	_, err = r.Resolve("SW1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown outcode: got %v, want ErrNotFound", err)
	}
}

func TestResolveDuplicateFirstWins(t *testing.T) {
	r, err := LoadTable(writeTable(t, `[
		{"outcode": "LS26", "code": 1543},
		{"outcode": "LS26", "code": 9999}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	code, err := r.Resolve("LS26")
	if err != nil {
		t.Fatal(err)
	}
	if code != 1543 {
		t.Errorf("duplicate outcode: got %d, want earliest entry 1543", code)
	}
}

func TestLoadTableErrors(t *testing.T) {
	if _, err := LoadTable(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file: want error")
	}
	if _, err := LoadTable(writeTable(t, `{not json`)); err == nil {
		t.Error("malformed file: want error")
	}
	if _, err := LoadTable(writeTable(t, `[]`)); err == nil {
		t.Error("empty table: want error")
	}
}
