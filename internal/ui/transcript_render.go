package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Paint classes for one rune of a body row. Higher wins when treatments
// overlap: the live selection reads over highlight paint, annotated over
// plain.
const (
	classNone = iota
	classPlain
	classAnnotated
	classSelection
)

// refreshContent re-renders the full document into the viewport. The base
// text never mutates; highlight and selection treatments are painted per row
// from the surface's registered spans.
func (m *TranscriptModel) refreshContent() {
	m.contentDirty = false
	if m.layout == nil {
		m.viewport.SetContent("")
		return
	}
	sel := m.selectionPaint()
	lines := make([]string, m.layout.totalLines())
	for i, li := range m.layout.lines {
		lines[i] = m.renderRow(i, li, sel)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// selectionPaint maps content rows to the selected offset range on each, for
// the live selection treatment.
func (m *TranscriptModel) selectionPaint() map[int]rowRange {
	if !m.hasSelection || m.layout == nil {
		return nil
	}
	aRow, aCol, bRow, bCol := m.orderedSelection()
	out := make(map[int]rowRange)
	for r := aRow; r <= bRow && r < m.layout.totalLines(); r++ {
		if r < 0 {
			continue
		}
		li := m.layout.lines[r]
		if li.owned || li.key == "" {
			continue
		}
		so, eo := li.start, li.end
		if r == aRow {
			if _, off, ok := m.layout.offsetAt(r, aCol); ok {
				so = off
			}
		}
		if r == bRow {
			if _, off, ok := m.layout.offsetAt(r, bCol); ok {
				eo = off + 1
			}
		}
		if eo > li.end {
			eo = li.end
		}
		if so < eo {
			out[r] = rowRange{start: so, end: eo}
		}
	}
	return out
}

func (m *TranscriptModel) renderRow(row int, li lineInfo, sel map[int]rowRange) string {
	gutter := "  "
	if m.focused && row == m.cursorLine {
		gutter = cursorGutterStyle.Render("▎") + " "
	}

	if li.owned {
		if li.hint {
			return gutter + collapsedHintStyle.Render(li.text)
		}
		return gutter + li.text
	}

	runes := []rune(li.text)
	if len(runes) == 0 {
		return gutter
	}
	classes := make([]int, len(runes))
	if m.surface != nil {
		for _, sr := range m.surface.rowSpans(li.key, li.start, li.end) {
			c := classPlain
			if sr.annotated {
				c = classAnnotated
			}
			paintRange(classes, li, sr.start, sr.end, c)
		}
	}
	if r, ok := sel[row]; ok {
		paintRange(classes, li, r.start, r.end, classSelection)
	}

	var b strings.Builder
	b.WriteString(gutter)
	i := 0
	for i < len(runes) {
		j := i
		for j < len(runes) && classes[j] == classes[i] {
			j++
		}
		seg := string(runes[i:j])
		switch classes[i] {
		case classPlain:
			b.WriteString(highlightPlainStyle.Render(seg))
		case classAnnotated:
			b.WriteString(highlightAnnotatedStyle.Render(seg))
		case classSelection:
			b.WriteString(selectionStyle.Render(seg))
		default:
			b.WriteString(seg)
		}
		i = j
	}
	return b.String()
}

func paintRange(classes []int, li lineInfo, start, end, class int) {
	for o := max(start, li.start); o < min(end, li.end); o++ {
		idx := o - li.start
		if idx < 0 || idx >= len(classes) {
			continue
		}
		if classes[idx] < class {
			classes[idx] = class
		}
	}
}

var cursorGutterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
