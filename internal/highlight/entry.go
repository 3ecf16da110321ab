// Package highlight implements the text-range highlighting and annotation
// engine: normalizing persisted highlight entries, projecting them onto a
// named-overlay rendering surface, resolving selection gestures into
// add/remove/annotate actions, and hit-testing hover tooltips.
//
// The engine never mutates host message content. All rendered state is
// rebuilt from persisted offsets whenever the host regenerates a message.
package highlight

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/shhac/marktea/internal/store"
)

// Normalize validates and orders a raw entry list: entries with an empty id
// or an empty span (end ≤ start) are dropped, negative starts are clamped,
// annotations are trimmed, and the result is sorted ascending by start.
// Overlapping entries are preserved as-is — two highlights may cover the same
// text, and the sort order decides deterministically which one a later
// overlapping selection targets.
func Normalize(raw []store.Highlight) []store.Highlight {
	out := make([]store.Highlight, 0, len(raw))
	for _, e := range raw {
		e.ID = strings.TrimSpace(e.ID)
		if e.ID == "" {
			continue
		}
		if e.Start < 0 {
			e.Start = 0
		}
		if e.End <= e.Start {
			continue
		}
		e.Annotation = strings.TrimSpace(e.Annotation)
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// FirstOverlapping returns the first entry of a normalized (start-ascending)
// list that overlaps [start, end), under ¬(end ≤ e.Start ∨ start ≥ e.End).
// With overlapping entries this is always the lowest-start match.
func FirstOverlapping(entries []store.Highlight, start, end int) (store.Highlight, bool) {
	for _, e := range entries {
		if end <= e.Start || start >= e.End {
			continue
		}
		return e, true
	}
	return store.Highlight{}, false
}

// NewEntry creates a highlight over [start, end) with a fresh opaque id and
// the display text captured at creation time.
func NewEntry(start, end int, text string) store.Highlight {
	return store.Highlight{
		ID:    uuid.NewString(),
		Start: start,
		End:   end,
		Text:  text,
	}
}
