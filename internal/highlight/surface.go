package highlight

import "strings"

// Span is the engine's span descriptor: a contiguous region of one message
// container's visible text, addressed by rune offsets.
type Span struct {
	MessageKey string
	Start, End int
}

// Rect is one rendered rectangle of a span in screen cells, half-open on the
// right and bottom edges. A wrapped span renders as several rects.
type Rect struct {
	Left, Top, Right, Bottom int
}

// Contains reports whether the point (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Size is a viewport extent in cells.
type Size struct {
	Width, Height int
}

// Surface is the named-overlay rendering capability the engine draws through.
// It paints a visual treatment over registered spans without altering the
// underlying content. Registering an already-registered name replaces that
// slot, so repeat registrations with a stable name converge.
//
// Styling is bulk-by-name: exactly two rules (plain and annotated buckets)
// regardless of how many spans are registered.
//
// A host without this capability passes a nil Surface to the engine, which
// then no-ops everywhere.
type Surface interface {
	Register(name string, span Span)
	Unregister(name string)
	SetStyles(plain, annotated []string)

	// SpanRects returns the currently rendered rectangles for a registered
	// span, in the same coordinate space as pointer events. Nil when the
	// span is scrolled out of view or unregistered.
	SpanRects(name string) []Rect
}

const overlayPrefix = "marktea-hl-"

// OverlayName derives the deterministic, namespaced overlay slot name for an
// entry id. Characters outside [A-Za-z0-9_-] are replaced so any opaque id
// yields a well-formed name; the same id always maps to the same slot.
func OverlayName(id string) string {
	var b strings.Builder
	b.WriteString(overlayPrefix)
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}
