package ui

import (
	"strings"
	"testing"
)

func TestStatusBarContextNotes(t *testing.T) {
	tests := []struct {
		name string
		set  func(m *StatusBarModel)
		want string
	}{
		{
			"ephemeral store",
			func(m *StatusBarModel) { m.SetEphemeralStore(true) },
			"not saved (memory store)",
		},
		{
			"no overlay capability",
			func(m *StatusBarModel) { m.SetNoOverlay(true) },
			"read-only (no color)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewStatusBarModel()
			m.SetWidth(120)
			tt.set(&m)
			if view := m.View(); !strings.Contains(view, tt.want) {
				t.Errorf("status bar missing %q note", tt.want)
			}
		})
	}
}

func TestStatusBarStaleClearIgnored(t *testing.T) {
	m := NewStatusBarModel()
	m.SetWidth(120)

	m.SetTemporaryMessage("first", 0)
	m.SetTemporaryMessage("second", 0)

	// The clear scheduled for "first" arrives after "second" replaced it.
	if m.ClearIfSeqMatch(1) {
		t.Error("stale clear was applied")
	}
	if view := m.View(); !strings.Contains(view, "second") {
		t.Error("flash message lost to a stale clear")
	}
	if !m.ClearIfSeqMatch(2) {
		t.Error("current clear was ignored")
	}
}
