package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Panel border colors
var (
	focusedBorderColor    = lipgloss.Color("62")  // bright purple/blue
	unfocusedBorderColor  = lipgloss.Color("240") // dim gray
	visualModeBorderColor = lipgloss.Color("75")  // blue
)

// Status bar
var (
	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252"))
	statusBarAccentStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(lipgloss.Color("62")).
				Bold(true)
)

// Message header styles, keyed by role
var (
	userHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)
	assistantHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)
	systemHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244")).
				Bold(true)
	headerMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
	starBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))
	collapsedHintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Italic(true)
)

// Highlight paint: two bulk treatments, plain and annotated. The annotated
// treatment is visibly distinct so a note's presence reads at a glance.
var (
	highlightPlainStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("58")).
				Foreground(lipgloss.Color("230"))
	highlightAnnotatedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("94")).
				Foreground(lipgloss.Color("230")).
				Underline(true)
)

// Live selection
var selectionStyle = lipgloss.NewStyle().
	Background(lipgloss.Color("24")).
	Foreground(lipgloss.Color("255"))

// Floating action menu
var (
	menuBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))
	menuItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
	menuSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("62")).
				Bold(true).
				Padding(0, 1)
	menuDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)
	menuPreviewStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244")).
				Italic(true).
				Padding(0, 1)
)

// Annotation tooltip
var tooltipStyle = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("94")).
	Foreground(lipgloss.Color("230")).
	Padding(0, 1)

// Annotate overlay
var (
	annotateOverlayBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("94")).
				Padding(1, 2)
	annotateTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("94")).
				Padding(0, 1)
	annotateHintStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))
	annotateQuoteStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244")).
				Italic(true)
)

// Session list styles
var (
	sessionTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	sessionMetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Vertical scrollbar (1-char wide column in the transcript panel)
var (
	scrollbarTrackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	scrollbarThumbStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("248"))
	scrollbarMarkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	scrollbarNotedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// Panel style builders
func panelStyle(focused bool, visualMode bool, width, height int) lipgloss.Style {
	borderColor := unfocusedBorderColor
	if focused {
		borderColor = focusedBorderColor
		if visualMode {
			borderColor = visualModeBorderColor
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(width).
		Height(height)
}

func panelHeaderStyle(focused bool) lipgloss.Style {
	if focused {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
}

// Mode badge styles
func navModeBadge() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Background(lipgloss.Color("238")).
		Padding(0, 1).
		Render("NAV")
}

func visualModeBadge() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("75")).
		Padding(0, 1).
		Render("VISUAL")
}

// newLoadingSpinner creates a consistently styled spinner for loading states.
func newLoadingSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	return s
}

// renderEmptyState renders a consistent empty state message with optional action hint.
func renderEmptyState(message, hint string) string {
	msg := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Padding(1, 2).
		Render("— " + message)
	if hint == "" {
		return msg
	}
	h := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		Padding(0, 2).
		Render(hint)
	return lipgloss.JoinVertical(lipgloss.Left, msg, h)
}

// renderErrorWithHint renders a consistent error message with retry hint.
func renderErrorWithHint(errMsg, hint string) string {
	msg := lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true).
		Padding(1, 2).
		Render(errMsg)
	if hint == "" {
		return msg
	}
	h := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244")).
		Padding(0, 2).
		Render(hint)
	return lipgloss.JoinVertical(lipgloss.Left, msg, h)
}

func roleHeaderStyle(role string) lipgloss.Style {
	switch role {
	case "user":
		return userHeaderStyle
	case "assistant":
		return assistantHeaderStyle
	default:
		return systemHeaderStyle
	}
}
