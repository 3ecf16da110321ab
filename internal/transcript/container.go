package transcript

import (
	"strings"
	"unicode/utf8"
)

// Segment is one run of container content: either host-visible text or
// UI injected by this application (headers, badges, action hints). Injected
// runs never count toward visible-text offsets.
type Segment struct {
	Text  string
	Owned bool
}

// Text returns a visible-text segment.
func Text(s string) Segment { return Segment{Text: s} }

// OwnedUI returns an injected-UI segment, excluded from visible text.
func OwnedUI(s string) Segment { return Segment{Text: s, Owned: true} }

// Position addresses a rune boundary inside one segment of a container.
// Off is a rune offset in [0, len(segment)].
type Position struct {
	Seg int
	Off int
}

// Container is the render-time content of one message: the message's own
// text interleaved with injected UI, in document order. Persisted highlight
// offsets are defined over the container's visible text only, so both
// directions of the codec below must measure visibility identically.
type Container struct {
	Key      string
	Segments []Segment
}

// NewContainer builds a container for the message with the given key.
func NewContainer(key string, segments ...Segment) *Container {
	return &Container{Key: key, Segments: segments}
}

// visibleRunes returns the number of visible-text runes a segment
// contributes. This is the single definition of "visible" shared by the
// forward and inverse mappings; any divergence corrupts stored offsets.
func visibleRunes(s Segment) int {
	if s.Owned {
		return 0
	}
	return utf8.RuneCountInString(s.Text)
}

// VisibleLen returns the container's total visible-text length in runes.
func (c *Container) VisibleLen() int {
	total := 0
	for _, s := range c.Segments {
		total += visibleRunes(s)
	}
	return total
}

// VisibleText returns the concatenated visible text.
func (c *Container) VisibleText() string {
	var b strings.Builder
	for _, s := range c.Segments {
		if !s.Owned {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// valid reports whether pos addresses a rune boundary within the container.
func (c *Container) valid(pos Position) bool {
	if pos.Seg < 0 || pos.Seg >= len(c.Segments) || pos.Off < 0 {
		return false
	}
	return pos.Off <= utf8.RuneCountInString(c.Segments[pos.Seg].Text)
}

// IsOwned reports whether pos lies inside an injected-UI segment.
func (c *Container) IsOwned(pos Position) bool {
	return c.valid(pos) && c.Segments[pos.Seg].Owned
}

// OffsetAt is the forward mapping: the count of visible-text runes strictly
// before pos. Injected segments measure as zero width, so a boundary inside
// one maps to the visible offset at that segment's start. Returns false for
// positions outside the container.
func (c *Container) OffsetAt(pos Position) (int, bool) {
	if !c.valid(pos) {
		return 0, false
	}
	n := 0
	for i := 0; i < pos.Seg; i++ {
		n += visibleRunes(c.Segments[i])
	}
	if !c.Segments[pos.Seg].Owned {
		n += pos.Off
	}
	return n, true
}

// SpanOffsets maps a start/end position pair to visible-text offsets.
// Fails when either boundary cannot be resolved or the span is empty or
// inverted (end ≤ start).
func (c *Container) SpanOffsets(start, end Position) (int, int, bool) {
	s, ok := c.OffsetAt(start)
	if !ok {
		return 0, 0, false
	}
	e, ok := c.OffsetAt(end)
	if !ok || e <= s {
		return 0, 0, false
	}
	return s, e, true
}

// Resolve is the inverse mapping: walk segments in document order, skipping
// injected UI, until the target visible offset is reached. An offset equal to
// the total visible length resolves to the end of the last visible segment.
// Returns false for negative or out-of-range offsets and for containers with
// no visible text.
func (c *Container) Resolve(offset int) (Position, bool) {
	if offset < 0 {
		return Position{}, false
	}
	acc := 0
	lastVisible := -1
	for i, s := range c.Segments {
		n := visibleRunes(s)
		if n == 0 {
			continue
		}
		if offset < acc+n {
			return Position{Seg: i, Off: offset - acc}, true
		}
		acc += n
		lastVisible = i
	}
	if offset == acc && lastVisible >= 0 {
		return Position{Seg: lastVisible, Off: visibleRunes(c.Segments[lastVisible])}, true
	}
	return Position{}, false
}

// SliceVisible returns the visible text between two offsets, clamped to the
// container's bounds. Used to capture the display substring at creation time.
func (c *Container) SliceVisible(start, end int) string {
	runes := []rune(c.VisibleText())
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}
