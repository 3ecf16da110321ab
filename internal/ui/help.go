package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlayModel renders a centered key reference.
type HelpOverlayModel struct {
	visible bool
	width   int
	height  int
}

func NewHelpOverlayModel() HelpOverlayModel {
	return HelpOverlayModel{}
}

func (m *HelpOverlayModel) Show() {
	m.visible = true
}

func (m *HelpOverlayModel) Hide() {
	m.visible = false
}

func (m HelpOverlayModel) IsVisible() bool {
	return m.visible
}

func (m *HelpOverlayModel) SetSize(termWidth, termHeight int) {
	m.width = termWidth
	m.height = termHeight
}

func (m HelpOverlayModel) Update(msg tea.Msg) (HelpOverlayModel, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q", "?":
			m.Hide()
			return m, func() tea.Msg { return HelpClosedMsg{} }
		}
	}
	return m, nil
}

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{
		title: "Global",
		entries: []helpEntry{
			{"Tab / Shift+Tab", "cycle panel focus"},
			{"1 / 2", "focus session list / transcript"},
			{"[", "toggle session list"},
			{"r", "reload sessions and transcript"},
			{"?", "this help"},
			{"q", "quit"},
		},
	},
	{
		title: "Transcript",
		entries: []helpEntry{
			{"j / k", "move cursor"},
			{"Ctrl+d / Ctrl+u", "half page"},
			{"g / G", "top / bottom"},
			{"mouse drag", "select text to highlight"},
			{"v", "visual line selection"},
			{"c", "collapse / expand message"},
			{"s", "star message"},
			{"z", "zoom message (markdown)"},
			{"y", "copy selection"},
		},
	},
	{
		title: "Selection menu",
		entries: []helpEntry{
			{"Enter", "highlight, or remove an existing one"},
			{"a", "annotate the highlight under the selection"},
			{"y", "copy selected text"},
			{"Esc / outside click", "dismiss, nothing changes"},
		},
	},
	{
		title: "Hover",
		entries: []helpEntry{
			{"mouse over highlight", "show its annotation"},
		},
	},
}

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62"))
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Width(20)
	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

func (m HelpOverlayModel) View() string {
	if !m.visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(helpTitleStyle.Render(" marktea — keys "))
	b.WriteString("\n")
	for _, section := range helpSections {
		b.WriteString("\n")
		b.WriteString(helpSectionStyle.Render(section.title))
		b.WriteString("\n")
		for _, e := range section.entries {
			b.WriteString(helpKeyStyle.Render(e.keys))
			b.WriteString(helpDescStyle.Render(e.desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(annotateHintStyle.Render("[Esc] close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(focusedBorderColor).
		Padding(1, 3).
		Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
