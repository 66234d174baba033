package store

import (
	"path/filepath"
	"testing"
)

// newTestStore creates a new Store with an in-memory database for testing.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(MemoryPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestNewStore_RunsMigrations(t *testing.T) {
	s := newTestStore(t)

	tables := []string{"rounds", "settings"}
	for _, table := range tables {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s should exist: %v", table, err)
		}
	}
}

func TestNewStore_EmptyPathIsMemory(t *testing.T) {
	s, err := New("")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if s.Path() != MemoryPath {
		t.Errorf("Path() = %q, want %q", s.Path(), MemoryPath)
	}
}

func TestNewStore_FileDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rounds.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := s.Rounds().Create(&Round{ID: "r1", Score: 1000, Waves: 1}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	s.Close()

	// Reopening runs migrations again without losing rows.
	s, err = New(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer s.Close()

	if _, err := s.Rounds().GetByID("r1"); err != nil {
		t.Errorf("round should survive reopen: %v", err)
	}
}
