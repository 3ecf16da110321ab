package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// loadState tracks the data-fetch lifecycle.
type loadState int

const (
	stateLoading loadState = iota
	stateLoaded
	stateError
)

// SessionItem represents one transcript file in the list.
type SessionItem struct {
	path  string
	title string
	mod   time.Time
}

func (i SessionItem) FilterValue() string { return i.title }
func (i SessionItem) Title() string       { return i.title }
func (i SessionItem) Description() string {
	if i.mod.IsZero() {
		return ""
	}
	return i.mod.Format("Jan 2 15:04")
}

// sessionItemDelegate renders session items: the open transcript gets a ▸
// marker, the cursor the stock left-border treatment.
type sessionItemDelegate struct {
	openPath string // path of the transcript currently open
}

func (d sessionItemDelegate) Height() int                             { return 2 }
func (d sessionItemDelegate) Spacing() int                            { return 1 }
func (d sessionItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d sessionItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(SessionItem)
	if !ok || m.Width() <= 0 {
		return
	}

	textWidth := m.Width() - 4
	if textWidth < 1 {
		textWidth = 1
	}
	title := ansi.Truncate(i.Title(), textWidth, "…")
	desc := ansi.Truncate(i.Description(), textWidth, "…")

	isCursor := index == m.Index()
	isOpen := d.openPath != "" && i.path == d.openPath

	switch {
	case isCursor:
		titleStyle := lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(focusedBorderColor).
			Foreground(focusedBorderColor).
			Bold(true).
			Padding(0, 0, 0, 1)
		descStyle := titleStyle.Bold(false).Foreground(lipgloss.Color("99"))
		title = titleStyle.Render(title)
		desc = descStyle.Render(desc)
	case isOpen:
		marker := lipgloss.NewStyle().Foreground(focusedBorderColor).Bold(true).Render("▸ ")
		title = marker + sessionTitleStyle.Bold(true).Render(title)
		desc = sessionMetaStyle.Padding(0, 0, 0, 2).Render(desc)
	default:
		title = "  " + sessionTitleStyle.Render(title)
		desc = "  " + sessionMetaStyle.Render(desc)
	}

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

// SessionListModel is the left panel: transcript files in the watched
// directory, newest first.
type SessionListModel struct {
	list    list.Model
	spinner spinner.Model
	state   loadState
	err     error
	focused bool

	openPath string // path of the transcript currently open

	width  int
	height int
}

func NewSessionListModel() SessionListModel {
	m := SessionListModel{
		spinner: newLoadingSpinner(),
		state:   stateLoading,
	}
	l := list.New(nil, sessionItemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	m.list = l
	return m
}

func (m *SessionListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width-2, height-3)
}

func (m *SessionListModel) SetFocused(focused bool) {
	m.focused = focused
}

// SetSessions installs the scanned transcript paths.
func (m *SessionListModel) SetSessions(paths []string) {
	items := make([]list.Item, 0, len(paths))
	for _, p := range paths {
		base := filepath.Base(p)
		item := SessionItem{
			path:  p,
			title: strings.TrimSuffix(base, filepath.Ext(base)),
		}
		if info, err := os.Stat(p); err == nil {
			item.mod = info.ModTime()
		}
		items = append(items, item)
	}
	m.list.SetItems(items)
	m.state = stateLoaded
	m.err = nil
}

func (m *SessionListModel) SetError(err error) {
	m.state = stateError
	m.err = err
}

// SetOpenPath marks which transcript is open in the reader.
func (m *SessionListModel) SetOpenPath(path string) {
	m.openPath = path
	m.list.SetDelegate(sessionItemDelegate{openPath: path})
}

// SelectedPath returns the path under the cursor.
func (m *SessionListModel) SelectedPath() (string, bool) {
	item, ok := m.list.SelectedItem().(SessionItem)
	if !ok {
		return "", false
	}
	return item.path, true
}

// FirstPath returns the newest transcript, used for the initial auto-open.
func (m *SessionListModel) FirstPath() (string, bool) {
	items := m.list.Items()
	if len(items) == 0 {
		return "", false
	}
	item, ok := items[0].(SessionItem)
	if !ok {
		return "", false
	}
	return item.path, true
}

// IsFiltering reports whether the list's filter input is active.
func (m *SessionListModel) IsFiltering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m SessionListModel) Update(msg tea.Msg) (SessionListModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.IsFiltering() {
		if key.Matches(keyMsg, SessionListKeys.Select) {
			if path, ok := m.SelectedPath(); ok {
				return m, func() tea.Msg { return SessionSelectedMsg{Path: path} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m SessionListModel) View() string {
	innerW := m.width - 2
	innerH := m.height - 2
	if innerW < 1 || innerH < 1 {
		return ""
	}

	title := panelHeaderStyle(m.focused).Render(" Transcripts")
	var body string
	switch m.state {
	case stateLoading:
		body = m.spinner.View() + " Scanning..."
	case stateError:
		body = renderErrorWithHint(fmt.Sprintf("Scan failed: %v", m.err), "Press r to retry.")
	default:
		if len(m.list.Items()) == 0 {
			body = renderEmptyState("no transcripts found", "Export a chat into the watched directory.")
		} else {
			body = m.list.View()
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	return panelStyle(m.focused, false, innerW, innerH).Render(content)
}

func (m SessionListModel) SpinnerTick() tea.Cmd {
	return m.spinner.Tick
}

func (m *SessionListModel) UpdateSpinner(msg spinner.TickMsg) tea.Cmd {
	if m.state != stateLoading {
		return nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}
