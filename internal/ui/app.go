package ui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/shhac/marktea/internal/config"
	"github.com/shhac/marktea/internal/store"
	"github.com/shhac/marktea/internal/transcript"
)

const statusFlashDuration = 3 * time.Second

// App is the root Bubbletea model: session list, transcript reader, status
// bar, and the modal overlays.
type App struct {
	sessions   SessionListModel
	transcript *TranscriptModel
	statusBar  StatusBarModel

	// Overlays
	helpOverlay HelpOverlayModel
	annotate    AnnotateOverlayModel
	zoom        ZoomOverlayModel

	st      store.Store
	cfg     *config.Config
	logger  *slog.Logger
	watcher *transcript.Watcher

	// Layout state
	focused           Panel
	width             int
	height            int
	sessionsCollapsed bool
	initialized       bool

	currentPath    string
	overlayCapable bool
}

// NewApp wires the application together. The store and logger are owned by
// the caller; the watcher is created here and closed when the program exits.
func NewApp(cfg *config.Config, st store.Store, logger *slog.Logger) App {
	if logger == nil {
		logger = slog.Default()
	}
	capable := OverlayCapable()

	var watcher *transcript.Watcher
	if cfg.Watch() {
		w, err := transcript.NewWatcher(cfg.TranscriptsDir)
		if err != nil {
			logger.Warn("app: transcript watcher unavailable", "dir", cfg.TranscriptsDir, "err", err)
		} else {
			watcher = w
		}
	}

	statusBar := NewStatusBarModel()
	statusBar.SetNoOverlay(!capable)
	if _, ephemeral := st.(*store.MemoryStore); ephemeral {
		statusBar.SetEphemeralStore(true)
	}

	return App{
		sessions:       NewSessionListModel(),
		transcript:     NewTranscriptModel(st, logger, capable),
		statusBar:      statusBar,
		helpOverlay:    NewHelpOverlayModel(),
		annotate:       NewAnnotateOverlayModel(),
		zoom:           NewZoomOverlayModel(),
		st:             st,
		cfg:            cfg,
		logger:         logger,
		watcher:        watcher,
		focused:        PanelSessions,
		overlayCapable: capable,
	}
}

// Close releases the app's background resources.
func (m App) Close() {
	if m.watcher != nil {
		m.watcher.Close()
	}
}

func (m App) Init() tea.Cmd {
	return tea.Batch(
		loadSessionsCmd(m.cfg.TranscriptsDir),
		frameTickCmd(m.cfg.FrameIntervalDuration()),
		watchEventsCmd(m.watcher),
		m.sessions.SpinnerTick(),
	)
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case FrameTickMsg:
		m.transcript.Frame()
		return m, frameTickCmd(m.cfg.FrameIntervalDuration())

	case SessionsLoadedMsg:
		return m.handleSessionsLoaded(msg)

	case SessionSelectedMsg:
		return m.openSession(msg.Path)

	case ThreadLoadedMsg:
		return m.handleThreadLoaded(msg)

	case TranscriptChangedMsg:
		return m.handleTranscriptChanged(msg)

	case WatcherClosedMsg:
		return m, nil

	case ValueWrittenMsg:
		if msg.Err != nil {
			return m, m.statusBar.SetTemporaryMessage(fmt.Sprintf("Save failed: %v", msg.Err), statusFlashDuration)
		}
		m.transcript.ApplyValue(msg.MessageKey, msg.Value)
		return m, nil

	case CopyDoneMsg:
		if msg.Err != nil {
			return m, m.statusBar.SetTemporaryMessage(fmt.Sprintf("Copy failed: %v", msg.Err), statusFlashDuration)
		}
		return m, m.statusBar.SetTemporaryMessage("Copied selection", statusFlashDuration)

	case StatusFlashMsg:
		return m, m.statusBar.SetTemporaryMessage(msg.Text, statusFlashDuration)

	case StatusBarClearMsg:
		m.statusBar.ClearIfSeqMatch(msg.Seq)
		return m, nil

	case ShowAnnotateMsg:
		return m, m.annotate.Show(msg.Seed, msg.Quote)

	case AnnotateSubmitMsg:
		return m, m.transcript.SubmitAnnotation(msg.Text)

	case ShowZoomMsg:
		m.zoom.Show(msg.Title, msg.Body)
		return m, nil

	case AnnotateClosedMsg, ZoomClosedMsg, HelpClosedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		if cmd := m.sessions.UpdateSpinner(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := m.transcript.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if m.overlayActive() {
			return m, nil
		}
		return m, m.transcript.HandleMouse(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	// Cursor blink and other component messages while the prompt is open.
	if m.annotate.IsVisible() {
		var cmd tea.Cmd
		m.annotate, cmd = m.annotate.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m App) overlayActive() bool {
	return m.annotate.IsVisible() || m.zoom.IsVisible() || m.helpOverlay.IsVisible()
}

func (m App) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	if !m.initialized {
		m.initialized = true
		if m.width < collapseThreshold {
			m.sessionsCollapsed = true
			m.focused = PanelTranscript
		}
	}
	m.recalcLayout()
	return m, nil
}

func (m *App) recalcLayout() {
	sizes := CalculatePanelSizes(m.width, m.height, m.sessionsCollapsed)
	if sizes.TooSmall {
		return
	}
	m.sessions.SetSize(sizes.SessionsWidth, sizes.PanelHeight)
	m.transcript.SetSize(sizes.TranscriptWidth, sizes.PanelHeight)
	m.transcript.SetOrigin(sizes.SessionsWidth, 0)
	m.transcript.SetTermSize(m.width, m.height)
	m.helpOverlay.SetSize(m.width, m.height)
	m.annotate.SetSize(m.width, m.height)
	m.zoom.SetSize(m.width, m.height)
	m.statusBar.SetWidth(m.width)
	if sizes.SessionsWidth == 0 && m.focused == PanelSessions {
		m.focusPanel(PanelTranscript)
	}
}

func (m *App) focusPanel(p Panel) {
	m.focused = p
	m.sessions.SetFocused(p == PanelSessions)
	m.transcript.SetFocused(p == PanelTranscript)
}

func (m App) handleSessionsLoaded(msg SessionsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.sessions.SetError(msg.Err)
		return m, nil
	}
	m.sessions.SetSessions(msg.Paths)
	if m.currentPath == "" {
		if path, ok := m.sessions.FirstPath(); ok {
			return m.openSession(path)
		}
	}
	return m, nil
}

func (m App) openSession(path string) (tea.Model, tea.Cmd) {
	m.currentPath = path
	m.transcript.SetLoading()
	m.focusPanel(PanelTranscript)
	return m, tea.Batch(
		loadThreadCmd(m.st, path),
		m.transcript.SpinnerTick(),
	)
}

func (m App) handleThreadLoaded(msg ThreadLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.transcript.SetError(msg.Err)
		return m, nil
	}
	m.transcript.SetThread(msg.Thread, msg.Values)
	m.sessions.SetOpenPath(msg.Thread.Path)
	m.statusBar.SetThreadTitle(msg.Thread.Title)
	return m, m.statusBar.SetTemporaryMessage(
		fmt.Sprintf("Loaded %d messages", len(msg.Thread.Messages)), statusFlashDuration)
}

// handleTranscriptChanged reacts to the exporter rewriting a transcript: the
// session list re-sorts, and if the open transcript changed it is reloaded
// from scratch (the rendered document is discarded and rebuilt).
func (m App) handleTranscriptChanged(msg TranscriptChangedMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{
		watchEventsCmd(m.watcher),
		loadSessionsCmd(m.cfg.TranscriptsDir),
	}
	if msg.Path == m.currentPath {
		cmds = append(cmds,
			loadThreadCmd(m.st, msg.Path),
			m.statusBar.SetTemporaryMessage("Transcript updated, reloading", statusFlashDuration),
			notifyCmd(m.cfg.NotificationsEnabled, "marktea", "Open transcript was updated"),
		)
	}
	return m, tea.Batch(cmds...)
}

func (m App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Close()
		return m, tea.Quit
	}

	// Modal overlays own input while visible.
	if m.annotate.IsVisible() {
		var cmd tea.Cmd
		m.annotate, cmd = m.annotate.Update(msg)
		return m, cmd
	}
	if m.zoom.IsVisible() {
		var cmd tea.Cmd
		m.zoom, cmd = m.zoom.Update(msg)
		return m, cmd
	}
	if m.helpOverlay.IsVisible() {
		var cmd tea.Cmd
		m.helpOverlay, cmd = m.helpOverlay.Update(msg)
		return m, cmd
	}

	// The filter input captures everything while typing.
	if m.focused == PanelSessions && m.sessions.IsFiltering() {
		var cmd tea.Cmd
		m.sessions, cmd = m.sessions.Update(msg)
		return m, cmd
	}

	// Visual mode and the floating menu take keys before global bindings.
	if m.focused == PanelTranscript && (m.transcript.VisualMode() || m.transcript.MenuVisible()) {
		return m, m.transcript.HandleKey(msg)
	}

	switch {
	case key.Matches(msg, GlobalKeys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, GlobalKeys.Help):
		m.helpOverlay.Show()
		return m, nil
	case key.Matches(msg, GlobalKeys.Tab), key.Matches(msg, GlobalKeys.ShiftTab):
		if !m.sessionsCollapsed {
			m.focusPanel(m.focused.Next())
		}
		return m, nil
	case key.Matches(msg, GlobalKeys.Panel1):
		if !m.sessionsCollapsed {
			m.focusPanel(PanelSessions)
		}
		return m, nil
	case key.Matches(msg, GlobalKeys.Panel2):
		m.focusPanel(PanelTranscript)
		return m, nil
	case key.Matches(msg, GlobalKeys.ToggleSessions):
		m.sessionsCollapsed = !m.sessionsCollapsed
		m.recalcLayout()
		return m, nil
	case key.Matches(msg, GlobalKeys.Refresh):
		cmds := []tea.Cmd{loadSessionsCmd(m.cfg.TranscriptsDir)}
		if m.currentPath != "" {
			cmds = append(cmds, loadThreadCmd(m.st, m.currentPath))
		}
		return m, tea.Batch(cmds...)
	}

	switch m.focused {
	case PanelSessions:
		var cmd tea.Cmd
		m.sessions, cmd = m.sessions.Update(msg)
		return m, cmd
	case PanelTranscript:
		return m, m.transcript.HandleKey(msg)
	}
	return m, nil
}

func (m App) View() string {
	sizes := CalculatePanelSizes(m.width, m.height, m.sessionsCollapsed)

	if sizes.TooSmall {
		msg := lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true).
			Render("Terminal too small. Please resize to at least 70×10.")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}

	var panelViews []string
	if sizes.SessionsWidth > 0 {
		panelViews = append(panelViews, m.sessions.View())
	}
	panelViews = append(panelViews, m.transcript.View())
	panels := lipgloss.JoinHorizontal(lipgloss.Top, panelViews...)

	mode := ModeNavigation
	switch {
	case m.overlayActive():
		mode = ModeOverlay
	case m.transcript.VisualMode():
		mode = ModeVisual
	}
	m.statusBar.SetState(m.focused, mode)
	m.statusBar.SetFiltering(m.focused == PanelSessions && m.sessions.IsFiltering())
	m.statusBar.SetThreadTitle(m.transcript.ThreadTitle())
	bar := m.statusBar.View()

	base := lipgloss.JoinVertical(lipgloss.Left, panels, bar)

	// Floating menu and tooltip composite over the frame in place.
	if view, x, y, ok := m.transcript.MenuOverlay(); ok {
		base = overlayAt(base, view, x, y)
	}
	if view, x, y, ok := m.transcript.TooltipOverlay(); ok {
		base = overlayAt(base, view, x, y)
	}

	// Modal overlays replace the frame.
	if m.annotate.IsVisible() {
		return m.annotate.View()
	}
	if m.zoom.IsVisible() {
		return m.zoom.View()
	}
	if m.helpOverlay.IsVisible() {
		return m.helpOverlay.View()
	}

	return base
}
