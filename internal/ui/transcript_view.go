package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shhac/marktea/internal/highlight"
	"github.com/shhac/marktea/internal/store"
	"github.com/shhac/marktea/internal/transcript"
)

// TranscriptModel renders one transcript thread and hosts the highlight
// engine: it owns the message containers, the cell layout, the overlay
// surface, and the selection/hover state the engine evaluates each frame.
//
// It is held by pointer: the engine's collaborator interfaces and the overlay
// surface point back into it.
type TranscriptModel struct {
	viewport viewport.Model
	spinner  spinner.Model
	width    int
	height   int
	panelX   int
	panelY   int
	termW    int
	termH    int
	focused  bool
	ready    bool
	loading  bool
	err      error

	st     store.Store
	logger *slog.Logger

	thread     *transcript.Thread
	threadKey  string
	order      []string
	containers map[string]*transcript.Container
	values     map[string]store.MessageValue
	collapsed  map[string]bool
	layout     *transcriptLayout

	// Highlight engine. surface is nil when the terminal cannot render the
	// overlay treatments; the engine then no-ops and reading still works.
	surface   *termSurface
	renderer  *highlight.Renderer
	ctrl      *highlight.Controller
	hover     *highlight.Hover
	projector *highlight.Projector

	// Live selection, in content cells. The anchor is where the gesture
	// started; the head follows the pointer or the visual-mode cursor.
	hasSelection bool
	dragging     bool
	anchorRow    int
	anchorCol    int
	headRow      int
	headCol      int
	visualMode   bool
	cursorLine   int

	menu           MenuModel
	tooltip        highlight.Tooltip
	tooltipVisible bool
	markers        []highlight.Marker

	contentDirty bool
}

// NewTranscriptModel creates the transcript panel. overlayCapable gates the
// highlight surface: without it the engine is wired with nil and every
// highlight operation quietly no-ops.
func NewTranscriptModel(st store.Store, logger *slog.Logger, overlayCapable bool) *TranscriptModel {
	if logger == nil {
		logger = slog.Default()
	}
	m := &TranscriptModel{
		spinner:    newLoadingSpinner(),
		st:         st,
		logger:     logger,
		containers: make(map[string]*transcript.Container),
		values:     make(map[string]store.MessageValue),
		collapsed:  make(map[string]bool),
	}
	var surf highlight.Surface
	if overlayCapable {
		m.surface = newTermSurface(m)
		surf = m.surface
	}
	m.renderer = highlight.NewRenderer(surf)
	m.hover = highlight.NewHover(surf)
	m.ctrl = highlight.NewController(highlight.ControllerConfig{
		Store:      st,
		Selection:  m,
		Containers: m,
		Entries:    m,
		Logger:     logger,
		OnCommit:   m.onCommit,
	})
	m.projector = highlight.NewProjector(m.renderer, st, m, logger)
	return m
}

// -- sizing and focus --

func (m *TranscriptModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	vpW := m.contentWidth()
	vpH := height - 3 // border top/bottom + title line
	if vpH < 1 {
		vpH = 1
	}
	if !m.ready {
		m.viewport = viewport.New(vpW, vpH)
		m.ready = true
	} else {
		m.viewport.Width = vpW
		m.viewport.Height = vpH
	}
	if m.thread != nil {
		m.rebuildLayout()
		m.reapplyAll()
	}
	m.contentDirty = true
}

// SetOrigin records the panel's top-left terminal cell, anchoring the
// pointer-space geometry (span rects, menu and tooltip placement).
func (m *TranscriptModel) SetOrigin(x, y int) {
	m.panelX = x
	m.panelY = y
}

// SetTermSize records the full terminal extent overlays are clamped to.
func (m *TranscriptModel) SetTermSize(w, h int) {
	m.termW = w
	m.termH = h
}

func (m *TranscriptModel) SetFocused(focused bool) {
	m.focused = focused
	m.contentDirty = true
}

func (m *TranscriptModel) VisualMode() bool { return m.visualMode }

// markContentDirty forces a re-render of the viewport content on the next
// frame. The overlay surface calls this when spans or styles change.
func (m *TranscriptModel) markContentDirty() { m.contentDirty = true }

// MenuVisible reports whether the floating action menu is up.
func (m *TranscriptModel) MenuVisible() bool { return m.menu.visible }

// SpinnerTick starts the loading spinner.
func (m *TranscriptModel) SpinnerTick() tea.Cmd { return m.spinner.Tick }

func (m *TranscriptModel) SetLoading() {
	m.loading = true
	m.err = nil
}

func (m *TranscriptModel) SetError(err error) {
	m.loading = false
	m.err = err
}

func (m *TranscriptModel) ThreadTitle() string {
	if m.thread == nil {
		return ""
	}
	return m.thread.Title
}

func (m *TranscriptModel) ThreadPath() string {
	if m.thread == nil {
		return ""
	}
	return m.thread.Path
}

// contentWidth is the viewport text width: panel minus borders, scrollbar
// column, and the gap before it.
func (m *TranscriptModel) contentWidth() int {
	w := m.width - 4
	if w < 10 {
		w = 10
	}
	return w
}

func (m *TranscriptModel) contentOriginX() int { return m.panelX + 1 }
func (m *TranscriptModel) contentOriginY() int { return m.panelY + 2 }

func (m *TranscriptModel) viewSize() highlight.Size {
	return highlight.Size{Width: m.termW, Height: m.termH}
}

// -- document lifecycle --

// SetThread installs a freshly loaded thread. The prior rendered document is
// gone, so all engine state is discarded and rebuilt from the store.
func (m *TranscriptModel) SetThread(th *transcript.Thread, values map[string]store.MessageValue) {
	m.thread = th
	m.threadKey = th.Key
	if values == nil {
		values = make(map[string]store.MessageValue)
	}
	m.values = values
	m.order = m.order[:0]
	m.containers = make(map[string]*transcript.Container, len(th.Messages))
	m.collapsed = make(map[string]bool)

	m.renderer.ResetAll()
	m.ctrl.SetThread(th.Key)
	m.hover.ClearPointer()
	m.clearSelection()
	m.visualMode = false
	m.cursorLine = 0
	m.loading = false
	m.err = nil

	for i := range th.Messages {
		msg := th.Messages[i]
		key := transcript.MessageKey(msg)
		m.order = append(m.order, key)
		m.containers[key] = m.buildContainer(key, msg)
	}
	m.rebuildLayout()
	m.reapplyAll()
	if m.ready {
		m.viewport.GotoTop()
	}
}

// ApplyValue installs an updated message value (star toggle, external write)
// and rebuilds that message's chrome and overlays.
func (m *TranscriptModel) ApplyValue(key string, v store.MessageValue) {
	if m.thread == nil {
		return
	}
	m.values[key] = v
	for i := range m.thread.Messages {
		msg := m.thread.Messages[i]
		if transcript.MessageKey(msg) == key {
			m.containers[key] = m.buildContainer(key, msg)
			break
		}
	}
	m.rebuildLayout()
	if c, ok := m.containers[key]; ok {
		m.renderer.ApplyHighlights(c, v.Highlights)
	}
	m.refreshMarkers()
	m.contentDirty = true
}

func (m *TranscriptModel) buildContainer(key string, msg transcript.Message) *transcript.Container {
	return transcript.NewContainer(key,
		transcript.OwnedUI(m.renderHeader(msg, m.values[key])),
		transcript.Text(msg.Text),
	)
}

func (m *TranscriptModel) renderHeader(msg transcript.Message, v store.MessageValue) string {
	parts := []string{roleHeaderStyle(msg.Role).Render("◆ " + msg.Role)}
	if !msg.CreatedAt.IsZero() {
		parts = append(parts, headerMetaStyle.Render(msg.CreatedAt.Format("15:04")))
	}
	if v.Starred {
		parts = append(parts, starBadgeStyle.Render("★"))
	}
	if len(v.Tags) > 0 {
		parts = append(parts, headerMetaStyle.Render("#"+strings.Join(v.Tags, " #")))
	}
	if v.Note != "" {
		parts = append(parts, headerMetaStyle.Render("✎"))
	}
	return strings.Join(parts, " ")
}

func (m *TranscriptModel) rebuildLayout() {
	m.layout = buildLayout(m.order, m.containers, m.collapsed, m.contentWidth())
	if total := m.layout.totalLines(); m.cursorLine >= total {
		m.cursorLine = max(0, total-1)
	}
	m.contentDirty = true
}

// reapplyAll rebuilds every message's overlays from the value cache.
func (m *TranscriptModel) reapplyAll() {
	for _, key := range m.order {
		m.renderer.ApplyHighlights(m.containers[key], m.values[key].Highlights)
	}
	m.refreshMarkers()
	m.contentDirty = true
}

func (m *TranscriptModel) refreshMarkers() {
	m.markers = m.projector.OverviewMarkers(m.order, m.threadKey)
}

// onCommit is the engine's persistence callback: refresh the value cache,
// repaint the message, and drop the now-consumed selection.
func (m *TranscriptModel) onCommit(key string, v store.MessageValue) {
	m.values[key] = v
	if c, ok := m.containers[key]; ok {
		m.renderer.ApplyHighlights(c, v.Highlights)
	}
	m.clearSelection()
	m.refreshMarkers()
	m.contentDirty = true
}

// -- engine collaborator interfaces --

// Container implements highlight.ContainerResolver.
func (m *TranscriptModel) Container(key string) (*transcript.Container, bool) {
	c, ok := m.containers[key]
	return c, ok
}

// Entries implements highlight.EntrySource.
func (m *TranscriptModel) Entries(messageKey string) []store.Highlight {
	return m.values[messageKey].Highlights
}

// SpanLine implements highlight.SpanLocator. Collapsed messages have no body
// rows, so their offsets report unlocatable and stay out of the overview.
func (m *TranscriptModel) SpanLine(key string, offset int) (int, bool) {
	if m.layout == nil {
		return 0, false
	}
	return m.layout.rowForOffset(key, offset)
}

// TotalLines implements highlight.SpanLocator.
func (m *TranscriptModel) TotalLines() int {
	if m.layout == nil {
		return 0
	}
	return m.layout.totalLines()
}

// Snapshot implements highlight.SelectionProvider: the engine's view of the
// live selection. Endpoints in different messages or none report Key == "";
// endpoints on chrome rows report InOwnedUI.
func (m *TranscriptModel) Snapshot() highlight.Snapshot {
	if !m.hasSelection || m.layout == nil {
		return highlight.Snapshot{}
	}
	aRow, aCol, bRow, bCol := m.orderedSelection()
	snap := highlight.Snapshot{
		Active: true,
		Bounds: m.selectionBounds(aRow, aCol, bRow, bCol),
	}

	aLine, okA := m.layout.rowAt(aRow)
	bLine, okB := m.layout.rowAt(bRow)
	if !okA || !okB {
		return snap
	}
	if aLine.owned || bLine.owned {
		snap.InOwnedUI = true
		snap.Key = aLine.key
		if snap.Key == "" {
			snap.Key = bLine.key
		}
		if snap.Key != "" {
			snap.Start = transcript.Position{Seg: aLine.seg}
			snap.End = transcript.Position{Seg: bLine.seg}
		}
		return snap
	}
	if aLine.key == "" || aLine.key != bLine.key {
		return snap // ambiguous selection: Key stays ""
	}

	key, startOff, ok := m.layout.offsetAt(aRow, aCol)
	if !ok {
		return snap
	}
	_, endOff, ok := m.layout.offsetAt(bRow, bCol)
	if !ok {
		return snap
	}
	endOff++ // the head cell is part of the selection
	if endOff > bLine.end {
		endOff = bLine.end
	}

	cont := m.containers[key]
	startPos, ok := cont.Resolve(startOff)
	if !ok {
		return snap
	}
	endPos, ok := cont.Resolve(endOff)
	if !ok {
		return snap
	}
	snap.Key = key
	snap.Start = startPos
	snap.End = endPos
	return snap
}

// orderedSelection returns the selection endpoints in document order.
func (m *TranscriptModel) orderedSelection() (aRow, aCol, bRow, bCol int) {
	aRow, aCol = m.anchorRow, m.anchorCol
	bRow, bCol = m.headRow, m.headCol
	if bRow < aRow || (bRow == aRow && bCol < aCol) {
		aRow, aCol, bRow, bCol = bRow, bCol, aRow, aCol
	}
	return aRow, aCol, bRow, bCol
}

// selectionBounds is the selection's bounding box in pointer space, used to
// anchor the floating menu.
func (m *TranscriptModel) selectionBounds(aRow, aCol, bRow, bCol int) highlight.Rect {
	left, right := aCol, bCol+1
	if aRow != bRow {
		left = 0
		right = m.contentWidth()
	}
	if right <= left {
		right = left + 1
	}
	yoff := m.viewport.YOffset
	return highlight.Rect{
		Left:   left + m.contentOriginX(),
		Top:    aRow - yoff + m.contentOriginY(),
		Right:  right + m.contentOriginX(),
		Bottom: bRow + 1 - yoff + m.contentOriginY(),
	}
}

func (m *TranscriptModel) clearSelection() {
	m.hasSelection = false
	m.dragging = false
}

// screenRects translates a span's layout rects into pointer space, dropping
// rows scrolled out of the viewport.
func (m *TranscriptModel) screenRects(key string, start, end int) []highlight.Rect {
	if m.layout == nil || !m.ready {
		return nil
	}
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height
	var out []highlight.Rect
	for _, r := range m.layout.spanRects(key, start, end) {
		if r.Top >= bottom || r.Bottom <= top {
			continue
		}
		out = append(out, highlight.Rect{
			Left:   r.Left + m.contentOriginX(),
			Top:    r.Top - top + m.contentOriginY(),
			Right:  r.Right + m.contentOriginX(),
			Bottom: r.Bottom - top + m.contentOriginY(),
		})
	}
	return out
}

// -- frame loop --

// Frame runs the per-frame engine work: at most one debounced selection
// evaluation, menu sync, and the hover hit test.
func (m *TranscriptModel) Frame() {
	wasVisible := m.menu.visible
	m.ctrl.Frame()
	m.menu.Sync(m.ctrl.Menu(), m.viewSize())
	if wasVisible != m.menu.visible {
		m.contentDirty = true
	}
	tip, ok := m.hover.Frame(m.renderer.Annotated(m.order), m.viewSize())
	m.tooltip = tip
	m.tooltipVisible = ok
}

// MenuOverlay returns the floating menu view and its terminal position.
func (m *TranscriptModel) MenuOverlay() (view string, x, y int, ok bool) {
	if !m.menu.visible {
		return "", 0, 0, false
	}
	return m.menu.View(), m.menu.x, m.menu.y, true
}

// TooltipOverlay returns the hover tooltip view and its terminal position.
func (m *TranscriptModel) TooltipOverlay() (view string, x, y int, ok bool) {
	if !m.tooltipVisible {
		return "", 0, 0, false
	}
	return renderTooltip(m.tooltip), m.tooltip.X, m.tooltip.Y, true
}

// -- input --

// cellAt maps a terminal coordinate to a content cell, false when outside
// the viewport.
func (m *TranscriptModel) cellAt(x, y int) (row, col int, ok bool) {
	if m.layout == nil || !m.ready {
		return 0, 0, false
	}
	col = x - m.contentOriginX()
	row = y - m.contentOriginY() + m.viewport.YOffset
	if col < 0 || col >= m.viewport.Width {
		return 0, 0, false
	}
	if y < m.contentOriginY() || y >= m.contentOriginY()+m.viewport.Height {
		return 0, 0, false
	}
	if row < 0 || row >= m.layout.totalLines() {
		return 0, 0, false
	}
	return row, col, true
}

// HandleMouse processes pointer input: wheel scrolling, drag selection, menu
// clicks, and hover tracking.
func (m *TranscriptModel) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.viewport.SetYOffset(m.viewport.YOffset - 3)
		m.contentDirty = true
		return nil
	case msg.Button == tea.MouseButtonWheelDown:
		m.viewport.SetYOffset(m.viewport.YOffset + 3)
		m.contentDirty = true
		return nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.dragging {
			if row, col, ok := m.cellAt(msg.X, msg.Y); ok {
				m.headRow, m.headCol = row, col
				m.contentDirty = true
			}
			return nil
		}
		if _, _, ok := m.cellAt(msg.X, msg.Y); ok {
			m.hover.SetPointer(msg.X, msg.Y)
		} else {
			m.hover.ClearPointer()
		}
		return nil

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		if m.menu.visible {
			if action, ok := m.menu.ActionAt(msg.X, msg.Y); ok {
				return m.runMenuAction(action)
			}
			// Click outside the menu dismisses it with no mutation.
			m.ctrl.Cancel()
			m.menu.Sync(m.ctrl.Menu(), m.viewSize())
			m.contentDirty = true
		}
		m.visualMode = false
		if row, col, ok := m.cellAt(msg.X, msg.Y); ok {
			m.dragging = true
			m.hasSelection = true
			m.anchorRow, m.anchorCol = row, col
			m.headRow, m.headCol = row, col
			m.contentDirty = true
		}
		return nil

	case tea.MouseActionRelease:
		if msg.Button != tea.MouseButtonLeft || !m.dragging {
			return nil
		}
		m.dragging = false
		if m.anchorRow == m.headRow && m.anchorCol == m.headCol {
			// A plain click: selection collapses to nothing.
			m.hasSelection = false
			m.contentDirty = true
		}
		m.ctrl.NoteSelectionEvent()
		return nil
	}
	return nil
}

// HandleKey processes transcript-panel keys in navigation and visual mode.
func (m *TranscriptModel) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if m.menu.visible {
		if cmd, handled := m.handleMenuKey(msg); handled {
			return cmd
		}
	}

	switch {
	case key.Matches(msg, TranscriptKeys.Down):
		m.moveCursor(1)
	case key.Matches(msg, TranscriptKeys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, TranscriptKeys.HalfDown):
		m.moveCursor(m.viewport.Height / 2)
	case key.Matches(msg, TranscriptKeys.HalfUp):
		m.moveCursor(-m.viewport.Height / 2)
	case key.Matches(msg, TranscriptKeys.Top):
		m.setCursor(0)
	case key.Matches(msg, TranscriptKeys.Bottom):
		if m.layout != nil {
			m.setCursor(m.layout.totalLines() - 1)
		}
	case key.Matches(msg, TranscriptKeys.Visual):
		m.toggleVisualMode()
	case key.Matches(msg, TranscriptKeys.Cancel):
		m.exitSelection()
	case key.Matches(msg, TranscriptKeys.Copy):
		if text := m.ctrl.SelectedText(); text != "" {
			m.ctrl.Cancel()
			m.menu.Sync(m.ctrl.Menu(), m.viewSize())
			return copyTextCmd(text)
		}
	case key.Matches(msg, TranscriptKeys.Collapse):
		m.toggleCollapseAtCursor()
	case key.Matches(msg, TranscriptKeys.Star):
		return m.toggleStarAtCursor()
	case key.Matches(msg, TranscriptKeys.Zoom):
		return m.zoomAtCursor()
	}
	return nil
}

func (m *TranscriptModel) handleMenuKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "up", "k":
		m.menu.MoveSelection(-1)
		return nil, true
	case "down", "j":
		m.menu.MoveSelection(1)
		return nil, true
	case "enter":
		return m.runMenuAction(m.menu.SelectedAction()), true
	case "a":
		if m.menu.CanAnnotate() {
			return m.runMenuAction(menuActionAnnotate), true
		}
	case "y":
		return m.runMenuAction(menuActionCopy), true
	case "esc":
		m.ctrl.Cancel()
		m.menu.Sync(m.ctrl.Menu(), m.viewSize())
		m.exitSelection()
		return nil, true
	}
	return nil, false
}

func (m *TranscriptModel) runMenuAction(action menuAction) tea.Cmd {
	switch action {
	case menuActionPrimary:
		err := m.ctrl.CommitHighlight()
		m.menu.Sync(m.ctrl.Menu(), m.viewSize())
		m.visualMode = false
		m.contentDirty = true
		if err != nil {
			return statusErrCmd(err)
		}
	case menuActionAnnotate:
		seed := m.ctrl.AnnotationSeed()
		quote := m.ctrl.SelectedText()
		if target, ok := m.ctrl.Target(); ok && target.Text != "" {
			quote = target.Text
		}
		return func() tea.Msg {
			return ShowAnnotateMsg{Seed: seed, Quote: quote}
		}
	case menuActionCopy:
		text := m.ctrl.SelectedText()
		m.ctrl.Cancel()
		m.menu.Sync(m.ctrl.Menu(), m.viewSize())
		m.exitSelection()
		if text != "" {
			return copyTextCmd(text)
		}
	}
	return nil
}

// SubmitAnnotation forwards the annotation prompt's text to the engine.
func (m *TranscriptModel) SubmitAnnotation(text string) tea.Cmd {
	err := m.ctrl.CommitAnnotation(text)
	m.menu.Sync(m.ctrl.Menu(), m.viewSize())
	m.contentDirty = true
	if err != nil {
		return statusErrCmd(err)
	}
	return nil
}

func (m *TranscriptModel) moveCursor(delta int) {
	m.setCursor(m.cursorLine + delta)
}

func (m *TranscriptModel) setCursor(line int) {
	if m.layout == nil {
		return
	}
	total := m.layout.totalLines()
	if total == 0 {
		return
	}
	if line < 0 {
		line = 0
	}
	if line >= total {
		line = total - 1
	}
	m.cursorLine = line
	// Keep the cursor visible.
	if line < m.viewport.YOffset {
		m.viewport.SetYOffset(line)
	} else if line >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
	if m.visualMode {
		m.headRow = line
		m.headCol = m.contentWidth()
		m.ctrl.NoteSelectionEvent()
	}
	m.contentDirty = true
}

// toggleVisualMode starts (or restarts) keyboard line selection anchored at
// the cursor.
func (m *TranscriptModel) toggleVisualMode() {
	if m.visualMode {
		m.exitSelection()
		return
	}
	m.visualMode = true
	m.hasSelection = true
	m.dragging = false
	m.anchorRow = m.cursorLine
	m.anchorCol = 0
	m.headRow = m.cursorLine
	m.headCol = m.contentWidth()
	m.ctrl.NoteSelectionEvent()
	m.contentDirty = true
}

func (m *TranscriptModel) exitSelection() {
	m.visualMode = false
	if m.hasSelection {
		m.clearSelection()
		m.ctrl.NoteSelectionEvent()
	}
	m.contentDirty = true
}

func (m *TranscriptModel) toggleCollapseAtCursor() {
	if m.layout == nil {
		return
	}
	key, ok := m.layout.messageAt(m.cursorLine)
	if !ok {
		return
	}
	m.collapsed[key] = !m.collapsed[key]
	m.exitSelection()
	m.ctrl.Cancel()
	m.menu.Sync(m.ctrl.Menu(), m.viewSize())
	m.rebuildLayout()
	m.refreshMarkers()
}

// toggleStarAtCursor flips the starred flag, preserving every other field of
// the message value.
func (m *TranscriptModel) toggleStarAtCursor() tea.Cmd {
	if m.layout == nil {
		return nil
	}
	key, ok := m.layout.messageAt(m.cursorLine)
	if !ok {
		return nil
	}
	v := m.values[key]
	v.Starred = !v.Starred
	return writeValueCmd(m.st, m.threadKey, key, v)
}

func (m *TranscriptModel) zoomAtCursor() tea.Cmd {
	if m.layout == nil || m.thread == nil {
		return nil
	}
	key, ok := m.layout.messageAt(m.cursorLine)
	if !ok {
		return nil
	}
	for i := range m.thread.Messages {
		msg := m.thread.Messages[i]
		if transcript.MessageKey(msg) != key {
			continue
		}
		title := fmt.Sprintf("%s · message %d", msg.Role, msg.Index+1)
		body := msg.Text
		return func() tea.Msg {
			return ShowZoomMsg{Title: title, Body: body}
		}
	}
	return nil
}

// Update forwards non-key messages (spinner ticks) to sub-components.
func (m *TranscriptModel) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(spinner.TickMsg); ok && m.loading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	}
	return nil
}

// -- view --

func (m *TranscriptModel) View() string {
	innerW := m.width - 2
	innerH := m.height - 2
	if innerW < 1 || innerH < 1 {
		return ""
	}

	title := m.titleLine(innerW)
	var body string
	switch {
	case m.err != nil:
		body = renderErrorWithHint(fmt.Sprintf("Failed to load transcript: %v", m.err), "Press r to retry.")
	case m.loading:
		body = m.spinner.View() + " Loading transcript..."
	case m.thread == nil:
		body = renderEmptyState("no transcript open", "Pick a session on the left.")
	default:
		if m.contentDirty {
			m.refreshContent()
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), " ", m.renderScrollbar())
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	return panelStyle(m.focused, m.visualMode, innerW, innerH).Render(content)
}

func (m *TranscriptModel) titleLine(width int) string {
	title := "Transcript"
	if m.thread != nil {
		title = m.thread.Title
		n := 0
		for _, v := range m.values {
			n += len(v.Highlights)
		}
		if n > 0 {
			title = fmt.Sprintf("%s · %d highlighted", title, n)
		}
	}
	return panelHeaderStyle(m.focused).Render(" " + truncateTo(title, width-2))
}

func truncateTo(s string, width int) string {
	if width < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
