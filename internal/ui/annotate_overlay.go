package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AnnotateOverlayModel renders a centered prompt for the annotation of an
// existing highlight. Submitting an empty body clears the annotation.
type AnnotateOverlayModel struct {
	textarea textarea.Model
	visible  bool

	quote string // the highlighted text being annotated

	width  int
	height int
}

func NewAnnotateOverlayModel() AnnotateOverlayModel {
	ta := textarea.New()
	ta.Placeholder = "Write an annotation..."
	ta.CharLimit = 2048
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Blur()
	return AnnotateOverlayModel{textarea: ta}
}

// Show opens the prompt seeded with the highlight's current annotation.
func (m *AnnotateOverlayModel) Show(seed, quote string) tea.Cmd {
	m.visible = true
	m.quote = quote
	m.textarea.SetValue(seed)
	m.textarea.CursorEnd()
	return m.textarea.Focus()
}

// Hide dismisses the overlay.
func (m *AnnotateOverlayModel) Hide() {
	m.visible = false
	m.textarea.Blur()
}

// IsVisible returns whether the overlay is currently shown.
func (m AnnotateOverlayModel) IsVisible() bool {
	return m.visible
}

// SetSize updates terminal dimensions for centering.
func (m *AnnotateOverlayModel) SetSize(termWidth, termHeight int) {
	m.width = termWidth
	m.height = termHeight
	m.textarea.SetWidth(m.innerWidth())
}

func (m AnnotateOverlayModel) innerWidth() int {
	w := m.width / 2
	if w < 30 {
		w = 30
	}
	if w > 72 {
		w = 72
	}
	return w
}

func (m AnnotateOverlayModel) Update(msg tea.Msg) (AnnotateOverlayModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.Hide()
			return m, func() tea.Msg { return AnnotateClosedMsg{} }
		case "ctrl+s", "enter":
			body := strings.TrimSpace(m.textarea.Value())
			m.Hide()
			return m, func() tea.Msg { return AnnotateSubmitMsg{Text: body} }
		}
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m AnnotateOverlayModel) View() string {
	if !m.visible {
		return ""
	}
	innerW := m.innerWidth()

	title := annotateTitleStyle.Render(" Annotate highlight ")
	var sections []string
	sections = append(sections, title)
	if m.quote != "" {
		quote := annotateQuoteStyle.Width(innerW).Render("“" + truncateTo(m.quote, innerW*2) + "”")
		sections = append(sections, quote)
	}
	sections = append(sections,
		m.textarea.View(),
		annotateHintStyle.Render("[Enter]save  [Esc]cancel  empty clears"),
	)

	box := annotateOverlayBorder.Width(innerW + 4).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
