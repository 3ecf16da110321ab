package ui

import (
	"os"

	"github.com/muesli/termenv"

	"github.com/shhac/marktea/internal/highlight"
)

// OverlayCapable reports whether the terminal can render highlight
// treatments at all. On monochrome output (or with NO_COLOR set) the engine
// gets no surface and the transcript is read-only; everything else keeps
// working.
func OverlayCapable() bool {
	out := termenv.NewOutput(os.Stdout)
	return !termenv.EnvNoColor() && out.EnvColorProfile() != termenv.Ascii
}

// termSurface implements highlight.Surface over the transcript panel's cell
// layout. Registered spans are named slots; SetStyles assigns each name to
// one of the two paint treatments. Geometry questions are answered from the
// live layout, so rects track scrolling and rewrapping for free.
type termSurface struct {
	view      *TranscriptModel
	spans     map[string]highlight.Span
	annotated map[string]bool // names painted with the annotated treatment
	styled    map[string]bool // names in either bucket
}

func newTermSurface(view *TranscriptModel) *termSurface {
	return &termSurface{
		view:      view,
		spans:     make(map[string]highlight.Span),
		annotated: make(map[string]bool),
		styled:    make(map[string]bool),
	}
}

func (s *termSurface) Register(name string, span highlight.Span) {
	s.spans[name] = span
	s.view.markContentDirty()
}

func (s *termSurface) Unregister(name string) {
	delete(s.spans, name)
	delete(s.annotated, name)
	delete(s.styled, name)
	s.view.markContentDirty()
}

func (s *termSurface) SetStyles(plain, annotated []string) {
	s.annotated = make(map[string]bool, len(annotated))
	s.styled = make(map[string]bool, len(plain)+len(annotated))
	for _, name := range plain {
		s.styled[name] = true
	}
	for _, name := range annotated {
		s.styled[name] = true
		s.annotated[name] = true
	}
	s.view.markContentDirty()
}

func (s *termSurface) SpanRects(name string) []highlight.Rect {
	sp, ok := s.spans[name]
	if !ok {
		return nil
	}
	return s.view.screenRects(sp.MessageKey, sp.Start, sp.End)
}

// spanRange is a styled slice of one row's visible text.
type spanRange struct {
	start, end int
	annotated  bool
}

// rowSpans returns the styled span ranges intersecting [start, end) of a
// message's visible text, clipped to that window.
func (s *termSurface) rowSpans(key string, start, end int) []spanRange {
	var out []spanRange
	for name, sp := range s.spans {
		if sp.MessageKey != key || !s.styled[name] {
			continue
		}
		a, b := max(sp.Start, start), min(sp.End, end)
		if a >= b {
			continue
		}
		out = append(out, spanRange{start: a, end: b, annotated: s.annotated[name]})
	}
	return out
}
