package highlight

import (
	"log/slog"

	"github.com/shhac/marktea/internal/store"
)

// Marker is one highlight position projected onto an overview ruler, as a
// fraction of the rendered document height.
type Marker struct {
	Position float64
	Kind     string
	Label    string
}

const (
	MarkerKindHighlight  = "highlight"
	MarkerLabelAnnotated = "annotated"
)

// SpanLocator maps a span start to its rendered document line. ok is false
// for spans in collapsed or detached messages, which the ruler excludes.
type SpanLocator interface {
	SpanLine(messageKey string, offset int) (line int, ok bool)
	TotalLines() int
}

// Projector exposes highlight positions to the overview ruler.
type Projector struct {
	renderer *Renderer
	store    store.Store
	locator  SpanLocator
	logger   *slog.Logger
}

// NewProjector creates a marker projector over the renderer's surface.
func NewProjector(renderer *Renderer, st store.Store, locator SpanLocator, logger *slog.Logger) *Projector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Projector{renderer: renderer, store: st, locator: locator, logger: logger}
}

// OverviewMarkers returns one marker per visible, non-collapsed highlighted
// span of the given messages, in message order. Spans that failed to render
// (stale offsets) and messages the locator reports as collapsed or detached
// produce no marker. With the overlay capability absent the result is empty.
func (p *Projector) OverviewMarkers(messageKeys []string, threadKey string) []Marker {
	if p == nil || !p.renderer.Available() {
		return nil
	}
	total := p.locator.TotalLines()
	if total <= 0 {
		return nil
	}

	values, err := p.store.ReadThread(threadKey)
	if err != nil {
		p.logger.Error("highlight: read thread values failed", "thread", threadKey, "err", err)
		return nil
	}

	var out []Marker
	for _, key := range messageKeys {
		for _, e := range Normalize(values[key].Highlights) {
			if !p.renderer.Registered(OverlayName(e.ID)) {
				continue
			}
			line, ok := p.locator.SpanLine(key, e.Start)
			if !ok {
				continue
			}
			m := Marker{
				Position: float64(line) / float64(total),
				Kind:     MarkerKindHighlight,
			}
			if e.Annotation != "" {
				m.Label = MarkerLabelAnnotated
			}
			out = append(out, m)
		}
	}
	return out
}
