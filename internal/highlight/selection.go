package highlight

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shhac/marktea/internal/store"
	"github.com/shhac/marktea/internal/transcript"
)

// State is the selection interaction state.
type State int

const (
	StateIdle State = iota
	StateEvaluating
	StateMenuShown
)

// Mode is the committed action a selection resolves to.
type Mode int

const (
	ModeNone Mode = iota
	ModeAdd
	ModeRemove
)

// Snapshot is the host's view of the current text selection. Key is the
// container both endpoints resolve to, or "" when they resolve to different
// containers or none. InOwnedUI marks an endpoint inside injected UI.
type Snapshot struct {
	Active     bool
	Key        string
	Start, End transcript.Position
	Bounds     Rect // selection bounding box in screen cells
	InOwnedUI  bool
}

// SelectionProvider exposes the live selection to the engine.
type SelectionProvider interface {
	Snapshot() Snapshot
}

// ContainerResolver maps a message key back to its live container.
type ContainerResolver interface {
	Container(key string) (*transcript.Container, bool)
}

// EntrySource exposes the current (cached) highlight entries per message.
type EntrySource interface {
	Entries(messageKey string) []store.Highlight
}

// MenuState describes the floating action menu the host should render.
// Preview carries the target entry's current annotation in Remove mode.
// CanAnnotate is false in Add mode: a brand-new highlight cannot be annotated
// within the gesture that creates it — annotation requires re-selecting an
// existing highlighted span.
type MenuState struct {
	Visible     bool
	Mode        Mode
	Bounds      Rect
	Preview     string
	CanAnnotate bool
}

// ControllerConfig wires the controller's collaborators.
type ControllerConfig struct {
	Store      store.Store
	Selection  SelectionProvider
	Containers ContainerResolver
	Entries    EntrySource
	Logger     *slog.Logger

	// OnCommit is invoked after a successful persist with the new value, so
	// the host can refresh its cache and rebuild the message's overlays.
	OnCommit func(messageKey string, v store.MessageValue)
}

// Controller is the selection interaction state machine:
//
//	Idle → Evaluating → {Add, Remove} → MenuShown → Idle
//
// Selection events schedule a debounced evaluation — at most one per frame,
// a newer trigger replacing (not queueing behind) a pending one. Commits
// read-modify-write the message value, touching only the Highlights field.
type Controller struct {
	cfg       ControllerConfig
	threadKey string

	state     State
	mode      Mode
	target    store.Highlight
	hasTarget bool
	menu      MenuState
	pending   bool

	selKey   string
	selStart int
	selEnd   int
	selText  string
}

// NewController creates an idle controller.
func NewController(cfg ControllerConfig) *Controller {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Controller{cfg: cfg}
}

// SetThread scopes subsequent commits to one thread and resets interaction
// state.
func (c *Controller) SetThread(threadKey string) {
	c.threadKey = threadKey
	c.ResetAll()
}

// NoteSelectionEvent schedules a re-evaluation on the next frame. Bursts of
// pointer-up / key-up / selection-change events coalesce into one.
func (c *Controller) NoteSelectionEvent() {
	c.pending = true
}

// Frame runs at most one pending evaluation. Called once per animation frame
// by the host.
func (c *Controller) Frame() {
	if !c.pending {
		return
	}
	c.pending = false
	c.evaluate()
}

// State returns the current interaction state.
func (c *Controller) State() State { return c.state }

// Mode returns the resolved action mode while the menu is shown.
func (c *Controller) Mode() Mode { return c.mode }

// Menu returns the current floating-menu state.
func (c *Controller) Menu() MenuState { return c.menu }

// Target returns the existing entry a Remove-mode selection resolved to.
func (c *Controller) Target() (store.Highlight, bool) {
	return c.target, c.hasTarget
}

// SelectedText returns the visible text captured by the last evaluation.
func (c *Controller) SelectedText() string { return c.selText }

// AnnotationSeed returns the text the annotation prompt should open with.
func (c *Controller) AnnotationSeed() string {
	if c.hasTarget {
		return c.target.Annotation
	}
	return ""
}

// Cancel dismisses the menu with no mutation (outside click, Escape).
func (c *Controller) Cancel() {
	c.toIdle()
}

// ResetAll clears all interaction state, including any pending evaluation.
// Called when the rendered document is discarded.
func (c *Controller) ResetAll() {
	c.pending = false
	c.toIdle()
}

func (c *Controller) toIdle() {
	c.state = StateIdle
	c.mode = ModeNone
	c.target = store.Highlight{}
	c.hasTarget = false
	c.menu = MenuState{}
	c.selKey = ""
	c.selText = ""
}

// evaluate resolves the live selection to an Add or Remove intent, or back to
// Idle when the selection is absent, ambiguous, or inside injected UI.
func (c *Controller) evaluate() {
	c.state = StateEvaluating

	snap := c.cfg.Selection.Snapshot()
	if !snap.Active || snap.Key == "" || snap.InOwnedUI {
		c.toIdle()
		return
	}
	cont, ok := c.cfg.Containers.Container(snap.Key)
	if !ok {
		c.toIdle()
		return
	}
	if cont.IsOwned(snap.Start) || cont.IsOwned(snap.End) {
		c.toIdle()
		return
	}
	start, end, ok := cont.SpanOffsets(snap.Start, snap.End)
	if !ok {
		c.toIdle()
		return
	}
	text := cont.SliceVisible(start, end)
	if strings.TrimSpace(text) == "" {
		c.toIdle()
		return
	}

	entries := Normalize(c.cfg.Entries.Entries(snap.Key))
	if e, found := FirstOverlapping(entries, start, end); found {
		c.mode = ModeRemove
		c.target = e
		c.hasTarget = true
	} else {
		c.mode = ModeAdd
		c.target = store.Highlight{}
		c.hasTarget = false
	}

	c.selKey = snap.Key
	c.selStart = start
	c.selEnd = end
	c.selText = text
	c.state = StateMenuShown
	c.menu = MenuState{
		Visible:     true,
		Mode:        c.mode,
		Bounds:      snap.Bounds,
		Preview:     c.target.Annotation,
		CanAnnotate: c.mode == ModeRemove,
	}
}

// CommitHighlight performs the menu's primary action: in Add mode it appends
// a freshly-id'd entry over the computed offsets; in Remove mode it deletes
// the target. The write is aborted — leaving prior visual state unchanged —
// if persistence fails; the next user action is the retry point.
func (c *Controller) CommitHighlight() error {
	if c.state != StateMenuShown {
		return nil
	}
	val, err := c.cfg.Store.ReadMessage(c.threadKey, c.selKey)
	if err != nil {
		c.cfg.Logger.Error("highlight: read message value failed", "message", c.selKey, "err", err)
		return fmt.Errorf("failed to read message value: %w", err)
	}

	switch c.mode {
	case ModeRemove:
		kept := val.Highlights[:0:0]
		for _, e := range val.Highlights {
			if e.ID != c.target.ID {
				kept = append(kept, e)
			}
		}
		val.Highlights = kept
	case ModeAdd:
		val.Highlights = append(val.Highlights, NewEntry(c.selStart, c.selEnd, c.selText))
	default:
		return nil
	}
	val.Highlights = Normalize(val.Highlights)

	if err := c.cfg.Store.WriteMessage(c.threadKey, c.selKey, val); err != nil {
		c.cfg.Logger.Error("highlight: write message value failed", "message", c.selKey, "err", err)
		return fmt.Errorf("failed to write message value: %w", err)
	}

	key := c.selKey
	c.toIdle()
	if c.cfg.OnCommit != nil {
		c.cfg.OnCommit(key, val)
	}
	return nil
}

// CommitAnnotation sets or clears the target entry's annotation. Only
// reachable in Remove mode. On success the menu stays open with its preview
// refreshed, so the user can keep editing.
func (c *Controller) CommitAnnotation(text string) error {
	if c.state != StateMenuShown || c.mode != ModeRemove {
		return nil
	}
	text = strings.TrimSpace(text)

	val, err := c.cfg.Store.ReadMessage(c.threadKey, c.selKey)
	if err != nil {
		c.cfg.Logger.Error("highlight: read message value failed", "message", c.selKey, "err", err)
		return fmt.Errorf("failed to read message value: %w", err)
	}
	for i := range val.Highlights {
		if val.Highlights[i].ID == c.target.ID {
			val.Highlights[i].Annotation = text
		}
	}
	val.Highlights = Normalize(val.Highlights)

	if err := c.cfg.Store.WriteMessage(c.threadKey, c.selKey, val); err != nil {
		c.cfg.Logger.Error("highlight: write message value failed", "message", c.selKey, "err", err)
		return fmt.Errorf("failed to write message value: %w", err)
	}

	c.target.Annotation = text
	c.menu.Preview = text
	if c.cfg.OnCommit != nil {
		c.cfg.OnCommit(c.selKey, val)
	}
	return nil
}

// PlaceMenu anchors a menu of the given size to a selection bounding box:
// below the selection when it fits, above otherwise, clamped to the viewport.
func PlaceMenu(bounds Rect, menuW, menuH int, view Size) (x, y int) {
	x = bounds.Left
	y = bounds.Bottom
	if y+menuH > view.Height {
		y = bounds.Top - menuH
	}
	if y < 0 {
		y = 0
	}
	if x+menuW > view.Width {
		x = view.Width - menuW
	}
	if x < 0 {
		x = 0
	}
	return x, y
}
