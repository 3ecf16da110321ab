package highlight

import (
	"testing"

	"github.com/shhac/marktea/internal/store"
	"github.com/shhac/marktea/internal/transcript"
)

// fakeSurface records registrations and style rules for assertions.
type fakeSurface struct {
	spans     map[string]Span
	rects     map[string][]Rect
	plain     []string
	annotated []string
	styleSets int
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		spans: make(map[string]Span),
		rects: make(map[string][]Rect),
	}
}

func (s *fakeSurface) Register(name string, span Span) { s.spans[name] = span }
func (s *fakeSurface) Unregister(name string)          { delete(s.spans, name) }
func (s *fakeSurface) SetStyles(plain, annotated []string) {
	s.plain, s.annotated = plain, annotated
	s.styleSets++
}
func (s *fakeSurface) SpanRects(name string) []Rect {
	if _, ok := s.spans[name]; !ok {
		return nil
	}
	return s.rects[name]
}

func foxContainer() *transcript.Container {
	return transcript.NewContainer("m-1",
		transcript.OwnedUI("◆ user"),
		transcript.Text("The quick brown fox"),
	)
}

func TestApplyHighlightsRegistersResolvedSpans(t *testing.T) {
	surface := newFakeSurface()
	r := NewRenderer(surface)
	c := foxContainer()

	r.ApplyHighlights(c, []store.Highlight{
		{ID: "q", Start: 4, End: 9, Text: "quick"},
		{ID: "b", Start: 10, End: 15, Text: "brown", Annotation: "color"},
	})

	if got := r.RegisteredCount("m-1"); got != 2 {
		t.Fatalf("registered %d spans, want 2", got)
	}
	span, ok := surface.spans[OverlayName("q")]
	if !ok {
		t.Fatal("span for entry q not registered")
	}
	if span.MessageKey != "m-1" || span.Start != 4 || span.End != 9 {
		t.Errorf("span = %+v", span)
	}

	// Two bulk rules: one name per bucket here.
	if len(surface.plain) != 1 || surface.plain[0] != OverlayName("q") {
		t.Errorf("plain bucket = %v", surface.plain)
	}
	if len(surface.annotated) != 1 || surface.annotated[0] != OverlayName("b") {
		t.Errorf("annotated bucket = %v", surface.annotated)
	}
}

func TestApplyHighlightsIsIdempotent(t *testing.T) {
	surface := newFakeSurface()
	r := NewRenderer(surface)
	c := foxContainer()
	entries := []store.Highlight{
		{ID: "q", Start: 4, End: 9, Text: "quick"},
		{ID: "b", Start: 10, End: 15, Text: "brown"},
	}

	r.ApplyHighlights(c, entries)
	first := len(surface.spans)
	r.ApplyHighlights(c, entries)

	if len(surface.spans) != first {
		t.Errorf("registration count changed across rebuilds: %d → %d", first, len(surface.spans))
	}
	if got := r.RegisteredCount("m-1"); got != 2 {
		t.Errorf("renderer tracks %d spans, want 2", got)
	}
}

func TestApplyHighlightsSkipsUnresolvableEntries(t *testing.T) {
	surface := newFakeSurface()
	r := NewRenderer(surface)
	c := foxContainer() // 19 visible runes

	r.ApplyHighlights(c, []store.Highlight{
		{ID: "stale", Start: 40, End: 50, Text: "gone"}, // beyond visible text
		{ID: "good", Start: 0, End: 3, Text: "The"},
	})

	if r.Registered(OverlayName("stale")) {
		t.Error("stale entry was registered")
	}
	if !r.Registered(OverlayName("good")) {
		t.Error("valid entry was dropped along with the stale one")
	}
}

func TestApplyHighlightsDiscardsPreviousRegistrations(t *testing.T) {
	surface := newFakeSurface()
	r := NewRenderer(surface)
	c := foxContainer()

	r.ApplyHighlights(c, []store.Highlight{{ID: "old", Start: 0, End: 3, Text: "The"}})
	r.ApplyHighlights(c, []store.Highlight{{ID: "new", Start: 4, End: 9, Text: "quick"}})

	if r.Registered(OverlayName("old")) {
		t.Error("previous registration survived a rebuild")
	}
	if _, ok := surface.spans[OverlayName("old")]; ok {
		t.Error("surface still holds the discarded span")
	}
}

func TestRendererCapabilityAbsent(t *testing.T) {
	r := NewRenderer(nil) // overlay capability unavailable

	// Must not panic and must produce no state.
	r.ApplyHighlights(foxContainer(), []store.Highlight{{ID: "q", Start: 4, End: 9}})
	r.ResetAll()

	if r.Available() {
		t.Error("nil surface reported as available")
	}
	if got := r.RegisteredCount("m-1"); got != 0 {
		t.Errorf("registered %d spans without a surface", got)
	}
	if spans := r.Annotated([]string{"m-1"}); len(spans) != 0 {
		t.Errorf("annotated spans without a surface: %v", spans)
	}
}

func TestResetAllClearsEverything(t *testing.T) {
	surface := newFakeSurface()
	r := NewRenderer(surface)
	r.ApplyHighlights(foxContainer(), []store.Highlight{
		{ID: "q", Start: 4, End: 9, Annotation: "note"},
	})

	r.ResetAll()

	if len(surface.spans) != 0 {
		t.Errorf("surface still holds %d spans", len(surface.spans))
	}
	if len(surface.plain) != 0 || len(surface.annotated) != 0 {
		t.Errorf("style buckets not cleared: %v / %v", surface.plain, surface.annotated)
	}
	if got := r.RegisteredCount("m-1"); got != 0 {
		t.Errorf("renderer still tracks %d spans", got)
	}
}

func TestAnnotatedOrderFollowsDocumentOrder(t *testing.T) {
	surface := newFakeSurface()
	r := NewRenderer(surface)

	c1 := transcript.NewContainer("m-1", transcript.Text("first message text"))
	c2 := transcript.NewContainer("m-2", transcript.Text("second message text"))
	r.ApplyHighlights(c2, []store.Highlight{{ID: "late", Start: 0, End: 6, Annotation: "b"}})
	r.ApplyHighlights(c1, []store.Highlight{
		{ID: "mid", Start: 6, End: 13, Annotation: "a2"},
		{ID: "early", Start: 0, End: 5, Annotation: "a1"},
	})

	spans := r.Annotated([]string{"m-1", "m-2"})
	if len(spans) != 3 {
		t.Fatalf("got %d annotated spans, want 3", len(spans))
	}
	wantIDs := []string{"early", "mid", "late"}
	for i, want := range wantIDs {
		if spans[i].ID != want {
			t.Errorf("span %d = %q, want %q", i, spans[i].ID, want)
		}
	}
}
