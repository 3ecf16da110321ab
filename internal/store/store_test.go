package store

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// runStoreTests exercises the Store contract against any implementation.
func runStoreTests(t *testing.T, s Store) {
	t.Helper()

	// Missing message reads as zero value.
	v, err := s.ReadMessage("thread-1", "msg-1")
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if !v.IsZero() {
		t.Fatalf("expected zero value for missing message, got %+v", v)
	}

	want := MessageValue{
		Starred: true,
		Tags:    []string{"design", "follow-up"},
		Note:    "revisit the retry budget",
		Highlights: []Highlight{
			{ID: "h1", Start: 4, End: 9, Text: "quick"},
			{ID: "h2", Start: 10, End: 15, Text: "brown", Annotation: "color"},
		},
	}
	if err := s.WriteMessage("thread-1", "msg-1", want); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	got, err := s.ReadMessage("thread-1", "msg-1")
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}

	// Last write wins.
	second := want
	second.Highlights = want.Highlights[:1]
	if err := s.WriteMessage("thread-1", "msg-1", second); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	got, err = s.ReadMessage("thread-1", "msg-1")
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if len(got.Highlights) != 1 {
		t.Errorf("got %d highlights after overwrite, want 1", len(got.Highlights))
	}

	// Thread read returns only this thread's rows.
	if err := s.WriteMessage("thread-2", "other", MessageValue{Note: "elsewhere"}); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	all, err := s.ReadThread("thread-1")
	if err != nil {
		t.Fatalf("ReadThread: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("ReadThread returned %d values, want 1", len(all))
	}
	if _, ok := all["msg-1"]; !ok {
		t.Errorf("ReadThread missing msg-1: %v", all)
	}

	// Writing the zero value deletes the row.
	if err := s.WriteMessage("thread-1", "msg-1", MessageValue{}); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	all, err = s.ReadThread("thread-1")
	if err != nil {
		t.Fatalf("ReadThread: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty thread after delete, got %v", all)
	}
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "meta.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	runStoreTests(t, s)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := MessageValue{Highlights: []Highlight{{ID: "h1", Start: 0, End: 3, Text: "The"}}}
	if err := s.WriteMessage("t", "m", want); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.ReadMessage("t", "m")
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("persisted value mismatch (-want +got):\n%s", diff)
	}
}

func TestMemoryStoreClonesValues(t *testing.T) {
	s := NewMemoryStore()
	v := MessageValue{Tags: []string{"a"}}
	if err := s.WriteMessage("t", "m", v); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	v.Tags[0] = "mutated"

	got, err := s.ReadMessage("t", "m")
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if got.Tags[0] != "a" {
		t.Errorf("stored value shares backing array with caller: %v", got.Tags)
	}
}

func TestMemoryStoreClonesReads(t *testing.T) {
	s := NewMemoryStore()
	v := MessageValue{
		Tags:       []string{"a"},
		Highlights: []Highlight{{ID: "h1", Start: 4, End: 9, Text: "quick"}},
	}
	if err := s.WriteMessage("t", "m", v); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	// Mutating a read value must not reach back into the store.
	got, err := s.ReadMessage("t", "m")
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	got.Tags[0] = "mutated"
	got.Highlights[0].Annotation = "leaked"

	again, err := s.ReadMessage("t", "m")
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if again.Tags[0] != "a" {
		t.Errorf("read value shares Tags backing array with the store: %v", again.Tags)
	}
	if again.Highlights[0].Annotation != "" {
		t.Errorf("read value shares Highlights backing array with the store: %+v", again.Highlights)
	}
}
