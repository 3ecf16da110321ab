package highlight

import (
	"sort"

	"github.com/shhac/marktea/internal/store"
	"github.com/shhac/marktea/internal/transcript"
)

// AnnotatedSpan is one registered span carrying an annotation, in the order
// the hover loop scans (ascending start within a container).
type AnnotatedSpan struct {
	Name       string
	ID         string
	Start      int
	Annotation string
}

// Renderer turns persisted highlight entries into overlay registrations on
// the rendering surface. It owns all runtime registration state: which names
// are live per container and which carry annotations. That state is rebuilt
// wholesale on every apply — host re-renders invalidate everything, so there
// is no incremental patching.
type Renderer struct {
	surface     Surface
	byContainer map[string][]string
	entries     map[string]store.Highlight
	annotated   map[string][]AnnotatedSpan
}

// NewRenderer creates a renderer over the given surface. A nil surface means
// the overlay capability is absent: every method becomes a no-op.
func NewRenderer(surface Surface) *Renderer {
	return &Renderer{
		surface:     surface,
		byContainer: make(map[string][]string),
		entries:     make(map[string]store.Highlight),
		annotated:   make(map[string][]AnnotatedSpan),
	}
}

// Available reports whether the overlay capability is present.
func (r *Renderer) Available() bool {
	return r != nil && r.surface != nil
}

// ApplyHighlights rebuilds every span for one container from raw persisted
// entries: normalize, discard all previous registrations for the container,
// then resolve and register each entry. An entry whose offsets no longer
// resolve against the live content is skipped; the rest of the batch still
// renders. Finally the two bulk style rules are regenerated.
func (r *Renderer) ApplyHighlights(c *transcript.Container, raw []store.Highlight) {
	if !r.Available() || c == nil {
		return
	}

	r.discard(c.Key)

	var names []string
	var annotated []AnnotatedSpan
	for _, e := range Normalize(raw) {
		if _, ok := c.Resolve(e.Start); !ok {
			continue
		}
		if _, ok := c.Resolve(e.End); !ok {
			continue
		}
		name := OverlayName(e.ID)
		if _, dup := r.entries[name]; dup {
			// Same id twice: registration converges to one slot.
			continue
		}
		r.surface.Register(name, Span{MessageKey: c.Key, Start: e.Start, End: e.End})
		r.entries[name] = e
		names = append(names, name)
		if e.Annotation != "" {
			annotated = append(annotated, AnnotatedSpan{
				Name:       name,
				ID:         e.ID,
				Start:      e.Start,
				Annotation: e.Annotation,
			})
		}
	}
	r.byContainer[c.Key] = names
	r.annotated[c.Key] = annotated
	r.restyle()
}

// discard unregisters every span previously registered for a container.
func (r *Renderer) discard(key string) {
	for _, name := range r.byContainer[key] {
		r.surface.Unregister(name)
		delete(r.entries, name)
	}
	delete(r.byContainer, key)
	delete(r.annotated, key)
}

// ResetAll drops every registration and clears both style buckets. Called
// when the whole rendered document is discarded (thread switch, full reload).
func (r *Renderer) ResetAll() {
	if !r.Available() {
		return
	}
	for key := range r.byContainer {
		r.discard(key)
	}
	r.surface.SetStyles(nil, nil)
}

// restyle regenerates the overlay stylesheet as exactly two rules, one per
// bucket, so styling cost is constant in the number of highlights.
func (r *Renderer) restyle() {
	var plain, annotated []string
	for name, e := range r.entries {
		if e.Annotation != "" {
			annotated = append(annotated, name)
		} else {
			plain = append(plain, name)
		}
	}
	sort.Strings(plain)
	sort.Strings(annotated)
	r.surface.SetStyles(plain, annotated)
}

// RegisteredCount returns the number of live spans for a container.
func (r *Renderer) RegisteredCount(key string) int {
	return len(r.byContainer[key])
}

// Registered reports whether a span is currently live under the given name.
func (r *Renderer) Registered(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Annotated returns the annotated spans for the given containers in document
// order, ascending start within each container — the hover scan order.
func (r *Renderer) Annotated(orderedKeys []string) []AnnotatedSpan {
	var out []AnnotatedSpan
	for _, key := range orderedKeys {
		out = append(out, r.annotated[key]...)
	}
	return out
}
