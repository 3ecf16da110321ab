package ui

import (
	"strings"

	"github.com/shhac/marktea/internal/highlight"
)

// renderScrollbar builds a 1-char-wide vertical scrollbar column with
// highlight markers. Each row maps proportionally to the total content; the
// thumb shows the visible portion and colored markers show where highlights
// live, annotated ones in a distinct color.
func (m *TranscriptModel) renderScrollbar() string {
	height := m.viewport.Height
	totalLines := m.viewport.TotalLineCount()
	if totalLines <= 0 || height <= 0 {
		return strings.Repeat(" \n", max(0, height-1)) + " "
	}

	// Thumb position and size
	thumbSize := max(1, height*height/totalLines)
	thumbStart := m.viewport.YOffset * height / totalLines
	if thumbStart+thumbSize > height {
		thumbStart = height - thumbSize
	}

	// Project marker fractions onto scrollbar rows. Annotated markers win
	// when several land on the same row.
	const (
		markNone = iota
		markPlain
		markAnnotated
	)
	markerRows := make([]int, height)
	for _, mk := range m.markers {
		row := int(mk.Position * float64(height))
		if row >= height {
			row = height - 1
		}
		if row < 0 {
			row = 0
		}
		pri := markPlain
		if mk.Label == highlight.MarkerLabelAnnotated {
			pri = markAnnotated
		}
		if pri > markerRows[row] {
			markerRows[row] = pri
		}
	}

	rows := make([]string, height)
	for i := 0; i < height; i++ {
		inThumb := i >= thumbStart && i < thumbStart+thumbSize
		marker := markerRows[i]

		switch {
		case inThumb && marker == markAnnotated:
			rows[i] = scrollbarNotedStyle.Render("┃")
		case inThumb && marker == markPlain:
			rows[i] = scrollbarMarkStyle.Render("┃")
		case inThumb:
			rows[i] = scrollbarThumbStyle.Render("┃")
		case marker == markAnnotated:
			rows[i] = scrollbarNotedStyle.Render("●")
		case marker == markPlain:
			rows[i] = scrollbarMarkStyle.Render("●")
		default:
			rows[i] = scrollbarTrackStyle.Render("│")
		}
	}
	return strings.Join(rows, "\n")
}
