package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// ZoomOverlayModel renders a single message full-screen, through the glamour
// markdown renderer, for reading long assistant replies comfortably.
type ZoomOverlayModel struct {
	viewport viewport.Model
	visible  bool
	ready    bool

	// The glamour renderer is wrap-width specific; it is rebuilt on resize
	// and reused across messages otherwise.
	md      *glamour.TermRenderer
	mdWidth int

	title string
	body  string

	width  int
	height int
}

func NewZoomOverlayModel() ZoomOverlayModel {
	return ZoomOverlayModel{}
}

// Show opens the overlay on the given message.
func (m *ZoomOverlayModel) Show(title, body string) {
	m.visible = true
	m.title = title
	m.body = body
	m.refreshContent()
	if m.ready {
		m.viewport.GotoTop()
	}
}

// Hide dismisses the overlay.
func (m *ZoomOverlayModel) Hide() {
	m.visible = false
}

// IsVisible returns whether the overlay is currently shown.
func (m ZoomOverlayModel) IsVisible() bool {
	return m.visible
}

// SetSize updates terminal dimensions.
func (m *ZoomOverlayModel) SetSize(termWidth, termHeight int) {
	m.width = termWidth
	m.height = termHeight
	vpW := termWidth - 6
	vpH := termHeight - 5
	if vpW < 10 {
		vpW = 10
	}
	if vpH < 3 {
		vpH = 3
	}
	if !m.ready {
		m.viewport = viewport.New(vpW, vpH)
		m.ready = true
	} else {
		m.viewport.Width = vpW
		m.viewport.Height = vpH
	}
	if m.visible {
		m.refreshContent()
	}
}

func (m *ZoomOverlayModel) refreshContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderBody(m.viewport.Width))
}

// renderBody renders the message through glamour, falling back to plain
// wrapped text when the renderer cannot be built or chokes on the input.
func (m *ZoomOverlayModel) renderBody(width int) string {
	if width < 10 {
		width = 10
	}
	if m.md == nil || m.mdWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return lipgloss.NewStyle().Width(width).Render(m.body)
		}
		m.md = r
		m.mdWidth = width
	}
	out, err := m.md.Render(m.body)
	if err != nil {
		return lipgloss.NewStyle().Width(width).Render(m.body)
	}
	return strings.TrimSpace(out)
}

func (m ZoomOverlayModel) Update(msg tea.Msg) (ZoomOverlayModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q", "z":
			m.Hide()
			return m, func() tea.Msg { return ZoomClosedMsg{} }
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ZoomOverlayModel) View() string {
	if !m.visible {
		return ""
	}
	title := panelHeaderStyle(true).Render(" " + m.title)
	hint := annotateHintStyle.Render(" [j/k]scroll  [Esc]close")
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), hint)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(focusedBorderColor).
		Padding(0, 1).
		Width(m.width - 4).
		Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
