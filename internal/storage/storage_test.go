package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open("file::memory:?cache=shared", zerolog.Nop())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testAdapter(t *testing.T, a Adapter) {
	t.Helper()

	if _, ok := a.Get("missing"); ok {
		t.Error("Get on empty adapter should miss")
	}

	a.Set("k", []byte(`{"v":1}`))
	got, ok := a.Get("k")
	if !ok || !bytes.Equal(got, []byte(`{"v":1}`)) {
		t.Fatalf("Get after Set = (%q, %v)", got, ok)
	}

	a.Set("k", []byte(`{"v":2}`))
	got, _ = a.Get("k")
	if !bytes.Equal(got, []byte(`{"v":2}`)) {
		t.Errorf("Set should overwrite, got %q", got)
	}

	a.Delete("k")
	if _, ok := a.Get("k"); ok {
		t.Error("Get after Delete should miss")
	}
	a.Delete("k") // deleting again is a no-op

	a.Set("a", []byte("1"))
	a.Set("b", []byte("2"))
	a.Clear()
	if _, ok := a.Get("a"); ok {
		t.Error("Get after Clear should miss")
	}
	if _, ok := a.Get("b"); ok {
		t.Error("Get after Clear should miss")
	}
}

func TestMemoryAdapter(t *testing.T) {
	testAdapter(t, NewMemory())
}

func TestSQLiteAdapter(t *testing.T) {
	testAdapter(t, openTestSQLite(t))
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	v := []byte("abc")
	m.Set("k", v)
	v[0] = 'x'
	got, _ := m.Get("k")
	if string(got) != "abc" {
		t.Errorf("stored value mutated through caller slice: %q", got)
	}
	got[0] = 'y'
	again, _ := m.Get("k")
	if string(again) != "abc" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biotutor.db")

	s, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Set("answer-history", []byte(`[]`))
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s2, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	got, ok := s2.Get("answer-history")
	if !ok || string(got) != `[]` {
		t.Fatalf("value not persisted: (%q, %v)", got, ok)
	}
}

func TestDefaultDBPathEnvOverride(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "nested", "custom.db")
	t.Setenv("BIOTUTOR_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Dir(want)); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}
}

func TestDefaultDBPathXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BIOTUTOR_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	want := filepath.Join(dir, "biotutor", "biotutor.db")
	if got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}
