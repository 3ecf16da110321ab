package ui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeyMap defines keys available in navigation mode regardless of focused panel.
type GlobalKeyMap struct {
	Quit           key.Binding
	Help           key.Binding
	Tab            key.Binding
	ShiftTab       key.Binding
	Panel1         key.Binding
	Panel2         key.Binding
	Refresh        key.Binding
	ToggleSessions key.Binding
}

var GlobalKeys = GlobalKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next panel"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("Shift+Tab", "prev panel"),
	),
	Panel1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "session list"),
	),
	Panel2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "transcript"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	ToggleSessions: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "toggle session list"),
	),
}

// SessionListKeyMap defines keys for the session list panel.
type SessionListKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

var SessionListKeys = SessionListKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "open transcript"),
	),
}

// TranscriptKeyMap defines keys for the transcript panel.
type TranscriptKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	HalfDown key.Binding
	HalfUp   key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Visual   key.Binding
	Confirm  key.Binding
	Annotate key.Binding
	Copy     key.Binding
	Collapse key.Binding
	Star     key.Binding
	Zoom     key.Binding
	Cancel   key.Binding
}

var TranscriptKeys = TranscriptKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j", "down"),
	),
	HalfDown: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("Ctrl+d", "half page down"),
	),
	HalfUp: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("Ctrl+u", "half page up"),
	),
	Top: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G"),
		key.WithHelp("G", "bottom"),
	),
	Visual: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "visual select"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "menu action"),
	),
	Annotate: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "annotate"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy selection"),
	),
	Collapse: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "collapse message"),
	),
	Star: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "star message"),
	),
	Zoom: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "zoom message"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
}
