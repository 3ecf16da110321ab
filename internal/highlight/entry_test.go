package highlight

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shhac/marktea/internal/store"
)

func TestNormalizeDropsInvalidAndSorts(t *testing.T) {
	raw := []store.Highlight{
		{ID: "c", Start: 10, End: 15, Text: "brown"},
		{ID: "bad-empty", Start: 5, End: 5},
		{ID: "bad-inverted", Start: 9, End: 4},
		{ID: "", Start: 0, End: 3},
		{ID: "a", Start: -2, End: 3, Text: "The"},
		{ID: "b", Start: 4, End: 9, Text: "quick", Annotation: "  speed  "},
	}

	got := Normalize(raw)
	want := []store.Highlight{
		{ID: "a", Start: 0, End: 3, Text: "The"},
		{ID: "b", Start: 4, End: 9, Text: "quick", Annotation: "speed"},
		{ID: "c", Start: 10, End: 15, Text: "brown"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
	}

	// Invariant: 0 ≤ start < end, ascending by start.
	for i, e := range got {
		if e.Start < 0 || e.Start >= e.End {
			t.Errorf("entry %d violates 0 ≤ start < end: %+v", i, e)
		}
		if i > 0 && got[i-1].Start > e.Start {
			t.Errorf("entries not sorted at %d: %d > %d", i, got[i-1].Start, e.Start)
		}
	}
}

func TestNormalizePreservesOverlaps(t *testing.T) {
	raw := []store.Highlight{
		{ID: "x", Start: 0, End: 10},
		{ID: "y", Start: 5, End: 15},
	}
	got := Normalize(raw)
	if len(got) != 2 {
		t.Fatalf("overlapping entries were merged: %v", got)
	}
}

func TestFirstOverlappingPicksLowestStart(t *testing.T) {
	entries := Normalize([]store.Highlight{
		{ID: "first", Start: 0, End: 5},
		{ID: "second", Start: 10, End: 15},
	})

	// A selection over [2,12) overlaps both; the lowest-start entry wins.
	e, ok := FirstOverlapping(entries, 2, 12)
	if !ok || e.ID != "first" {
		t.Fatalf("FirstOverlapping(2,12) = %+v, %v; want entry 'first'", e, ok)
	}

	// Touching boundaries do not overlap.
	if _, ok := FirstOverlapping(entries, 5, 10); ok {
		t.Error("adjacent selection [5,10) reported as overlapping")
	}

	if _, ok := FirstOverlapping(entries, 20, 25); ok {
		t.Error("disjoint selection reported as overlapping")
	}
}

func TestNewEntryAssignsUniqueIDs(t *testing.T) {
	a := NewEntry(4, 9, "quick")
	b := NewEntry(4, 9, "quick")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("entry ids not unique: %q vs %q", a.ID, b.ID)
	}
	if a.Start != 4 || a.End != 9 || a.Text != "quick" {
		t.Errorf("entry fields = %+v", a)
	}
}

func TestOverlayNameSanitizes(t *testing.T) {
	got := OverlayName("ab c/д:1_x-2")
	want := "marktea-hl-ab-c---1_x-2"
	if got != want {
		t.Errorf("OverlayName = %q, want %q", got, want)
	}
	if OverlayName("id") != OverlayName("id") {
		t.Error("OverlayName not deterministic")
	}
}
