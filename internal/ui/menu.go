package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shhac/marktea/internal/highlight"
)

// menuAction identifies one floating-menu entry.
type menuAction int

const (
	menuActionNone menuAction = iota
	menuActionPrimary
	menuActionAnnotate
	menuActionCopy
)

type menuItem struct {
	label   string
	action  menuAction
	enabled bool
}

const menuPreviewWidth = 24

// MenuModel renders the floating action menu the selection controller asks
// for. Its contents and anchor are re-synced from the engine's MenuState
// every frame, so the model itself carries no decision logic.
type MenuModel struct {
	visible  bool
	mode     highlight.Mode
	items    []menuItem
	selected int
	preview  string

	x, y          int
	width, height int
}

// Sync reconciles the menu with the engine's state and (re)places it against
// the selection bounds.
func (m *MenuModel) Sync(ms highlight.MenuState, view highlight.Size) {
	if !ms.Visible {
		m.visible = false
		return
	}

	opening := !m.visible || m.mode != ms.Mode
	m.mode = ms.Mode
	m.preview = ms.Preview
	if ms.Mode == highlight.ModeRemove {
		m.items = []menuItem{
			{label: "Remove highlight", action: menuActionPrimary, enabled: true},
			{label: "Annotate…", action: menuActionAnnotate, enabled: ms.CanAnnotate},
			{label: "Copy text", action: menuActionCopy, enabled: true},
		}
	} else {
		m.items = []menuItem{
			{label: "Highlight", action: menuActionPrimary, enabled: true},
			{label: "Copy text", action: menuActionCopy, enabled: true},
		}
	}
	if opening {
		m.selected = 0
	}

	w := 0
	for _, it := range m.items {
		if lw := lipgloss.Width(it.label); lw > w {
			w = lw
		}
	}
	if m.preview != "" && menuPreviewWidth > w {
		w = menuPreviewWidth
	}
	m.width = w + 4 // item padding + border
	m.height = len(m.items) + 2
	if m.preview != "" {
		m.height++
	}

	m.x, m.y = highlight.PlaceMenu(ms.Bounds, m.width, m.height, view)
	m.visible = true
}

// MoveSelection steps the keyboard selection, skipping disabled items.
func (m *MenuModel) MoveSelection(delta int) {
	if len(m.items) == 0 {
		return
	}
	i := m.selected
	for range m.items {
		i = (i + delta + len(m.items)) % len(m.items)
		if m.items[i].enabled {
			m.selected = i
			return
		}
	}
}

// SelectedAction returns the action under the keyboard selection.
func (m *MenuModel) SelectedAction() menuAction {
	if m.selected < 0 || m.selected >= len(m.items) || !m.items[m.selected].enabled {
		return menuActionNone
	}
	return m.items[m.selected].action
}

// CanAnnotate reports whether the annotate entry is currently enabled.
func (m *MenuModel) CanAnnotate() bool {
	for _, it := range m.items {
		if it.action == menuActionAnnotate {
			return it.enabled
		}
	}
	return false
}

// Contains reports whether a terminal cell falls inside the menu box.
func (m *MenuModel) Contains(x, y int) bool {
	return m.visible &&
		x >= m.x && x < m.x+m.width &&
		y >= m.y && y < m.y+m.height
}

// ActionAt maps a terminal cell to the menu entry under it.
func (m *MenuModel) ActionAt(x, y int) (menuAction, bool) {
	if !m.Contains(x, y) {
		return menuActionNone, false
	}
	row := y - m.y - 1 // inside the border
	if row < 0 || row >= len(m.items) {
		return menuActionNone, false
	}
	if !m.items[row].enabled {
		return menuActionNone, false
	}
	m.selected = row
	return m.items[row].action, true
}

func (m *MenuModel) View() string {
	if !m.visible {
		return ""
	}
	inner := m.width - 2
	var rows []string
	for i, it := range m.items {
		style := menuItemStyle
		switch {
		case !it.enabled:
			style = menuDisabledStyle
		case i == m.selected:
			style = menuSelectedStyle
		}
		rows = append(rows, style.Width(inner).Render(it.label))
	}
	if m.preview != "" {
		rows = append(rows, menuPreviewStyle.Width(inner).Render(truncateTo(m.preview, inner-2)))
	}
	return menuBorderStyle.Render(strings.Join(rows, "\n"))
}
