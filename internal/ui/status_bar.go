package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarModel renders the bottom status bar.
type StatusBarModel struct {
	width     int
	focused   Panel
	mode      AppMode
	filtering bool   // true when the session list filter input is active
	thread    string // title of the open transcript
	noOverlay bool   // terminal cannot render highlights
	ephemeral bool   // metadata store is in-memory, nothing persists

	// Temporary flash message (e.g. "Copied selection").
	statusMessage string
	// Monotonic counter: incremented on each SetTemporaryMessage call.
	// StatusBarClearMsg carries the seq at time of scheduling; if it doesn't
	// match current seq the clear is stale and ignored.
	messageSeq int
}

func NewStatusBarModel() StatusBarModel {
	return StatusBarModel{}
}

func (m *StatusBarModel) SetWidth(width int) {
	m.width = width
}

func (m *StatusBarModel) SetState(focused Panel, mode AppMode) {
	m.focused = focused
	m.mode = mode
}

// SetFiltering updates whether the session list filter input is active.
func (m *StatusBarModel) SetFiltering(filtering bool) {
	m.filtering = filtering
}

// SetThreadTitle updates the open transcript's title shown on the right.
func (m *StatusBarModel) SetThreadTitle(title string) {
	m.thread = title
}

// SetNoOverlay marks that the terminal cannot render highlight treatments.
func (m *StatusBarModel) SetNoOverlay(noOverlay bool) {
	m.noOverlay = noOverlay
}

// SetEphemeralStore marks that metadata is held in memory only.
func (m *StatusBarModel) SetEphemeralStore(ephemeral bool) {
	m.ephemeral = ephemeral
}

// SetTemporaryMessage shows a flash message in the status bar.
// Returns a tea.Cmd that will send a StatusBarClearMsg after the given duration,
// which the caller must include in the returned command batch.
func (m *StatusBarModel) SetTemporaryMessage(msg string, duration time.Duration) tea.Cmd {
	m.messageSeq++
	m.statusMessage = msg
	seq := m.messageSeq
	return tea.Tick(duration, func(_ time.Time) tea.Msg {
		return StatusBarClearMsg{Seq: seq}
	})
}

// ClearIfSeqMatch clears the message only if the given seq matches the current one.
// Returns true if the message was cleared.
func (m *StatusBarModel) ClearIfSeqMatch(seq int) bool {
	if seq == m.messageSeq {
		m.statusMessage = ""
		return true
	}
	return false
}

func (m StatusBarModel) View() string {
	var leftHints string
	if m.statusMessage != "" {
		leftHints = " " + m.statusMessage
	} else {
		leftHints = m.keyHints()
	}
	rightInfo := m.contextInfo()

	leftRendered := statusBarAccentStyle.Render(leftHints)
	rightRendered := statusBarStyle.Render(rightInfo)

	leftWidth := lipgloss.Width(leftRendered)
	rightWidth := lipgloss.Width(rightRendered)
	padding := m.width - leftWidth - rightWidth
	if padding < 0 {
		padding = 0
	}

	bar := leftRendered +
		statusBarStyle.Render(strings.Repeat(" ", padding)) +
		rightRendered

	return statusBarStyle.Width(m.width).Render(bar)
}

func (m StatusBarModel) keyHints() string {
	if m.filtering {
		return " [Esc]cancel [Enter]apply [type]filter"
	}

	if m.mode == ModeVisual {
		return " [j/k]extend [Enter]menu action [y]copy [Esc]cancel"
	}

	switch m.focused {
	case PanelSessions:
		return " [j/k]move [/]filter [Enter]open [Tab]panel [?]help [q]quit"
	case PanelTranscript:
		return " [j/k]move [v]select [c]collapse [s]star [z]zoom [r]reload [Tab]panel [?]help"
	default:
		return " [Tab]panel [?]help [q]quit"
	}
}

func (m StatusBarModel) contextInfo() string {
	badge := navModeBadge()
	if m.mode == ModeVisual {
		badge = visualModeBadge()
	}

	info := ""
	if m.noOverlay {
		info = " read-only (no color) "
	}
	if m.ephemeral {
		info += " not saved (memory store) "
	}
	if m.thread != "" {
		info += " " + m.thread + " "
	}
	return info + badge
}
