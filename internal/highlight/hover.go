package highlight

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Point is a pointer position in screen cells.
type Point struct {
	X, Y int
}

// HitTester decides whether a pointer falls inside a span's rendered
// rectangles. The linear scan is the shipped implementation; the seam exists
// so a spatial index can replace it without changing observable behavior.
type HitTester interface {
	Hit(p Point, rects []Rect) bool
}

type linearHitTester struct{}

func (linearHitTester) Hit(p Point, rects []Rect) bool {
	for _, r := range rects {
		if r.Contains(p.X, p.Y) {
			return true
		}
	}
	return false
}

// Tooltip is the annotation popup the host should render: pre-wrapped text
// lines and a placement already flipped and clamped against the viewport.
type Tooltip struct {
	Lines  []string
	X, Y   int
	Width  int
	Height int
}

const tooltipMaxTextWidth = 40

// Hover is the per-frame annotation hit-test loop. It runs every frame while
// the controller is active, regardless of pointer activity — a deliberate
// simplicity-over-efficiency choice.
type Hover struct {
	surface    Surface
	hit        HitTester
	pointer    Point
	hasPointer bool
	currentID  string
}

// NewHover creates a hover loop over the surface. A nil surface disables it.
func NewHover(surface Surface) *Hover {
	return &Hover{surface: surface, hit: linearHitTester{}}
}

// SetPointer records the last observed pointer position.
func (h *Hover) SetPointer(x, y int) {
	h.pointer = Point{X: x, Y: y}
	h.hasPointer = true
}

// ClearPointer forgets the pointer (it left the window).
func (h *Hover) ClearPointer() {
	h.hasPointer = false
}

// CurrentID returns the entry id the tooltip is showing for, or "".
func (h *Hover) CurrentID() string { return h.currentID }

// Frame performs one hover scan: annotated spans are tested in order against
// every rendered rectangle (a wrapped span has several); the first containing
// rect wins, so overlapping annotated spans resolve to whichever is scanned
// first. Returns false when the tooltip should be hidden.
func (h *Hover) Frame(spans []AnnotatedSpan, view Size) (Tooltip, bool) {
	if h.surface == nil || !h.hasPointer || len(spans) == 0 {
		h.currentID = ""
		return Tooltip{}, false
	}
	for _, sp := range spans {
		if !h.hit.Hit(h.pointer, h.surface.SpanRects(sp.Name)) {
			continue
		}
		h.currentID = sp.ID
		return placeTooltip(sp.Annotation, h.pointer, view), true
	}
	h.currentID = ""
	return Tooltip{}, false
}

// placeTooltip wraps the annotation and positions the box below the pointer,
// flipping above it on bottom overflow and clamping horizontally.
func placeTooltip(text string, p Point, view Size) Tooltip {
	lines := wrapRunes(text, tooltipMaxTextWidth)
	w := 0
	for _, line := range lines {
		if n := runewidth.StringWidth(line); n > w {
			w = n
		}
	}
	w += 4                // border + padding
	hgt := len(lines) + 2 // border

	x := p.X
	y := p.Y + 1
	if y+hgt > view.Height {
		y = p.Y - hgt
	}
	if y < 0 {
		y = 0
	}
	if x+w > view.Width {
		x = view.Width - w
	}
	if x < 0 {
		x = 0
	}
	return Tooltip{Lines: lines, X: x, Y: y, Width: w, Height: hgt}
}

// wrapRunes word-wraps text to a display width, breaking long words.
func wrapRunes(text string, width int) []string {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		words := strings.Fields(raw)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := ""
		for _, word := range words {
			switch {
			case current == "":
				current = word
			case runewidth.StringWidth(current+" "+word) <= width:
				current += " " + word
			default:
				lines = append(lines, current)
				current = word
			}
			for runewidth.StringWidth(current) > width {
				lines = append(lines, runewidth.Truncate(current, width, ""))
				current = strings.TrimPrefix(current, runewidth.Truncate(current, width, ""))
			}
		}
		if current != "" {
			lines = append(lines, current)
		}
	}
	return lines
}
