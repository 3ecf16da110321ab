package ui

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/shhac/marktea/internal/highlight"
	"github.com/shhac/marktea/internal/transcript"
)

// bodyIndent is the screen column where message body text begins.
const bodyIndent = 2

// lineInfo describes one content row of the rendered transcript.
type lineInfo struct {
	key    string // message key; "" on separator rows
	owned  bool   // injected chrome: header, collapsed hint, separators
	hint   bool   // collapsed-body placeholder row
	seg    int    // container segment index backing this row
	start  int    // visible-text offset of the row's first rune (body rows)
	end    int    // one past the last offset covered by this row (body rows)
	text   string // raw row text, unstyled, without a trailing newline
	indent int    // screen column where the text begins
}

// transcriptLayout is the map from rendered content rows back to message
// containers and visible-text offsets. It is rebuilt whenever the document,
// collapse state, or panel width changes; every cell-level feature (mouse
// selection, span rectangles, overview markers) reads through it.
type transcriptLayout struct {
	lines []lineInfo
	rows  map[string][]int // message key -> body row indexes, in order
	width int
}

// buildLayout lays out the given containers top to bottom at the given
// content width. Collapsed messages contribute their chrome rows only, so
// none of their body offsets are addressable.
func buildLayout(order []string, containers map[string]*transcript.Container, collapsed map[string]bool, width int) *transcriptLayout {
	if width < bodyIndent+1 {
		width = bodyIndent + 1
	}
	l := &transcriptLayout{
		rows:  make(map[string][]int),
		width: width,
	}

	for _, key := range order {
		c, ok := containers[key]
		if !ok {
			continue
		}
		visBase := 0
		for si, seg := range c.Segments {
			if seg.Owned {
				l.lines = append(l.lines, lineInfo{
					key:   key,
					owned: true,
					seg:   si,
					text:  seg.Text,
				})
				continue
			}
			segRunes := []rune(seg.Text)
			if collapsed[key] {
				l.lines = append(l.lines, lineInfo{
					key:    key,
					owned:  true,
					hint:   true,
					seg:    si,
					text:   collapsedHintText(len(segRunes)),
					indent: bodyIndent,
				})
			} else {
				for _, rr := range wrapOffsets(seg.Text, width-bodyIndent) {
					rowText := string(segRunes[rr.start:rr.end])
					if n := len(rowText); n > 0 && rowText[n-1] == '\n' {
						rowText = rowText[:n-1]
					}
					l.rows[key] = append(l.rows[key], len(l.lines))
					l.lines = append(l.lines, lineInfo{
						key:    key,
						seg:    si,
						start:  visBase + rr.start,
						end:    visBase + rr.end,
						text:   rowText,
						indent: bodyIndent,
					})
				}
			}
			visBase += len(segRunes)
		}
		// Blank separator between messages.
		l.lines = append(l.lines, lineInfo{owned: true})
	}
	return l
}

func collapsedHintText(runes int) string {
	return fmt.Sprintf("⋯ collapsed (%d chars)", runes)
}

type rowRange struct{ start, end int }

// wrapOffsets word-wraps text to the given display width, returning rune
// offset ranges rather than strings so every offset stays addressable. Hard
// newlines end a row and are covered by it; a space at a soft break stays on
// the row it ends.
func wrapOffsets(text string, width int) []rowRange {
	if width < 1 {
		width = 1
	}
	runes := []rune(text)
	var rows []rowRange
	start := 0
	col := 0
	lastSpace := -1
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' {
			rows = append(rows, rowRange{start, i + 1})
			start = i + 1
			col = 0
			lastSpace = -1
			continue
		}
		w := runewidth.RuneWidth(r)
		if col+w > width && i > start {
			brk := i
			if lastSpace >= start {
				brk = lastSpace + 1
			}
			rows = append(rows, rowRange{start, brk})
			start = brk
			col = 0
			for j := start; j <= i; j++ {
				col += runewidth.RuneWidth(runes[j])
			}
			lastSpace = -1
		} else {
			col += w
		}
		if r == ' ' {
			lastSpace = i
		}
	}
	if start < len(runes) || len(rows) == 0 {
		rows = append(rows, rowRange{start, len(runes)})
	}
	return rows
}

func (l *transcriptLayout) totalLines() int { return len(l.lines) }

func (l *transcriptLayout) rowAt(row int) (lineInfo, bool) {
	if row < 0 || row >= len(l.lines) {
		return lineInfo{}, false
	}
	return l.lines[row], true
}

// rowForOffset returns the content row displaying the given visible-text
// offset of a message. False when the message is collapsed or the offset is
// out of range.
func (l *transcriptLayout) rowForOffset(key string, off int) (int, bool) {
	rows := l.rows[key]
	for _, idx := range rows {
		li := l.lines[idx]
		if off >= li.start && off < li.end {
			return idx, true
		}
	}
	if len(rows) > 0 {
		last := rows[len(rows)-1]
		if off == l.lines[last].end {
			return last, true
		}
	}
	return 0, false
}

// offsetAt maps a content cell to the visible-text offset under it. The
// column clamps into the row, so a click past the end of a line lands on its
// last offset. False on chrome rows.
func (l *transcriptLayout) offsetAt(row, col int) (string, int, bool) {
	li, ok := l.rowAt(row)
	if !ok || li.owned || li.key == "" {
		return li.key, 0, false
	}
	col -= li.indent
	if col < 0 {
		col = 0
	}
	off := li.start
	w := 0
	for _, r := range li.text {
		rw := runewidth.RuneWidth(r)
		if w+rw > col {
			break
		}
		w += rw
		off++
	}
	if off > li.end {
		off = li.end
	}
	return li.key, off, true
}

// spanRects returns the content-space rectangles covering the offsets
// [start, end) of a message: one rect per wrapped row the span touches.
// Content space means rows are absolute content lines and columns are panel
// columns; the caller translates by scroll offset and panel origin.
func (l *transcriptLayout) spanRects(key string, start, end int) []highlight.Rect {
	if end <= start {
		return nil
	}
	var rects []highlight.Rect
	for _, idx := range l.rows[key] {
		li := l.lines[idx]
		s := max(start, li.start)
		e := min(end, li.end)
		if s >= e {
			continue
		}
		left := li.indent + l.colWidth(li, s)
		right := li.indent + l.colWidth(li, e)
		if right <= left {
			right = left + 1
		}
		rects = append(rects, highlight.Rect{Left: left, Top: idx, Right: right, Bottom: idx + 1})
	}
	return rects
}

// colWidth returns the display width of the row's text up to (not including)
// the visible-text offset off.
func (l *transcriptLayout) colWidth(li lineInfo, off int) int {
	n := off - li.start
	w := 0
	for i, r := range []rune(li.text) {
		if i >= n {
			break
		}
		w += runewidth.RuneWidth(r)
	}
	return w
}

// messageAt returns the message key owning the given content row, scanning
// upward past separator rows.
func (l *transcriptLayout) messageAt(row int) (string, bool) {
	if row >= len(l.lines) {
		row = len(l.lines) - 1
	}
	for r := row; r >= 0; r-- {
		if k := l.lines[r].key; k != "" {
			return k, true
		}
	}
	return "", false
}
