package history

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestStoreRecordAndLookup(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	m := Metadata{OldPath: "a.bin", NewPath: "b.bin", BlockSize: 16, PatchSize: 42, TargetCRC32: 0xdeadbeef, CreatedAtUnix: 1700000000}
	if err := s.Record("out.patch", m); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := s.Lookup("out.patch")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != m {
		t.Fatalf("Lookup returned %+v, want %+v", got, m)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestStoreForget(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Record("out.patch", Metadata{OldPath: "a", NewPath: "b"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Forget("out.patch"); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	if _, err := s.Lookup("out.patch"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Lookup after Forget = %v, want ErrNotFound", err)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	entries := map[string]Metadata{}
	for i := 0; i < 20; i++ {
		path := filepath.Join("patches", string(rune('a'+i))+".patch")
		m := Metadata{OldPath: "ref.bin", NewPath: path, BlockSize: 16, PatchSize: i, CreatedAtUnix: int64(i)}
		if err := s.Record(path, m); err != nil {
			t.Fatalf("Record(%d): %v", i, err)
		}
		entries[path] = m
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	for path, want := range entries {
		got, err := reopened.Lookup(path)
		if err != nil {
			t.Fatalf("Lookup(%s) after reopen: %v", path, err)
		}
		if got != want {
			t.Fatalf("Lookup(%s) = %+v, want %+v", path, got, want)
		}
	}
}

func TestStoreReopenReplaysForget(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := s.Record("out.patch", Metadata{OldPath: "a", NewPath: "b"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Forget("out.patch"); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.Lookup("out.patch"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Lookup after reopen = %v, want ErrNotFound", err)
	}
}
