package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/shhac/marktea/internal/highlight"
)

// overlayAt composites a floating box over the base frame at terminal cell
// (x, y), splicing each overlay line into the base line under it while
// preserving ANSI styling on both sides.
func overlayAt(base, overlay string, x, y int) string {
	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(overlay, "\n")
	for i, ol := range overLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		bl := baseLines[row]
		w := ansi.StringWidth(ol)
		left := ansi.Truncate(bl, x, "")
		if lw := ansi.StringWidth(left); lw < x {
			left += strings.Repeat(" ", x-lw)
		}
		right := ansi.TruncateLeft(bl, x+w, "")
		baseLines[row] = left + ol + right
	}
	return strings.Join(baseLines, "\n")
}

// renderTooltip draws the hover tooltip box. The engine already wrapped the
// annotation and sized the box; this only applies the visual treatment.
func renderTooltip(t highlight.Tooltip) string {
	return tooltipStyle.Render(strings.Join(t.Lines, "\n"))
}
