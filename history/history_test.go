package history

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndRecent(t *testing.T) {
	s := newTestStore(t)

	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		if _, err := s.Append(text, "en"); err != nil {
			t.Fatalf("Append(%q): %v", text, err)
		}
		// Keys are timestamp-ordered; keep appends strictly ordered.
		time.Sleep(time.Millisecond)
	}

	entries, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	// Newest first.
	for i, want := range []string{"third", "second", "first"} {
		if entries[i].Text != want {
			t.Errorf("entries[%d].Text = %q, want %q", i, entries[i].Text, want)
		}
	}
}

func TestRecentLimit(t *testing.T) {
	s := newTestStore(t)

	for range 5 {
		if _, err := s.Append("text", "en"); err != nil {
			t.Fatalf("Append: %v", err)
		}
		time.Sleep(time.Millisecond)
	}

	entries, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}
}

func TestRecentEmptyStore(t *testing.T) {
	s := newTestStore(t)

	entries, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries from empty store", len(entries))
	}

	if entries, _ := s.Recent(0); entries != nil {
		t.Error("Recent(0) should return nothing")
	}
}

func TestAppendPopulatesEntry(t *testing.T) {
	s := newTestStore(t)

	entry, err := s.Append("hello world", "de")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if entry.ID == "" {
		t.Error("entry ID is empty")
	}
	if entry.Language != "de" {
		t.Errorf("Language = %q, want de", entry.Language)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}
