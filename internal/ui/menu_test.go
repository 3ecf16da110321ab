package ui

import (
	"testing"

	"github.com/shhac/marktea/internal/highlight"
)

func menuState(mode highlight.Mode, canAnnotate bool) highlight.MenuState {
	return highlight.MenuState{
		Visible:     true,
		Mode:        mode,
		Bounds:      highlight.Rect{Left: 10, Top: 5, Right: 30, Bottom: 6},
		CanAnnotate: canAnnotate,
	}
}

func TestMenuSync(t *testing.T) {
	view := highlight.Size{Width: 120, Height: 40}

	t.Run("add mode offers highlight and copy", func(t *testing.T) {
		var m MenuModel
		m.Sync(menuState(highlight.ModeAdd, false), view)
		if !m.visible {
			t.Fatal("menu not visible")
		}
		if len(m.items) != 2 {
			t.Fatalf("items = %d, want 2", len(m.items))
		}
		if m.items[0].action != menuActionPrimary || m.items[1].action != menuActionCopy {
			t.Errorf("unexpected actions: %+v", m.items)
		}
		if m.CanAnnotate() {
			t.Error("annotate offered on a new highlight")
		}
	})

	t.Run("remove mode offers remove, annotate, copy", func(t *testing.T) {
		var m MenuModel
		m.Sync(menuState(highlight.ModeRemove, true), view)
		if len(m.items) != 3 {
			t.Fatalf("items = %d, want 3", len(m.items))
		}
		if m.items[1].action != menuActionAnnotate || !m.items[1].enabled {
			t.Errorf("annotate entry = %+v", m.items[1])
		}
	})

	t.Run("hiding state hides the menu", func(t *testing.T) {
		var m MenuModel
		m.Sync(menuState(highlight.ModeAdd, false), view)
		m.Sync(highlight.MenuState{}, view)
		if m.visible {
			t.Error("menu still visible")
		}
	})

	t.Run("mode change resets the keyboard selection", func(t *testing.T) {
		var m MenuModel
		m.Sync(menuState(highlight.ModeRemove, true), view)
		m.MoveSelection(1)
		if m.selected != 1 {
			t.Fatalf("selected = %d, want 1", m.selected)
		}
		m.Sync(menuState(highlight.ModeAdd, false), view)
		if m.selected != 0 {
			t.Errorf("selected = %d after mode change, want 0", m.selected)
		}
	})

	t.Run("re-sync of same state keeps the selection", func(t *testing.T) {
		var m MenuModel
		st := menuState(highlight.ModeRemove, true)
		m.Sync(st, view)
		m.MoveSelection(1)
		m.Sync(st, view)
		if m.selected != 1 {
			t.Errorf("selected = %d after re-sync, want 1", m.selected)
		}
	})
}

func TestMenuMoveSelection(t *testing.T) {
	var m MenuModel
	m.Sync(menuState(highlight.ModeRemove, false), highlight.Size{Width: 120, Height: 40})

	// Items: Remove (enabled), Annotate (disabled), Copy (enabled).
	m.MoveSelection(1)
	if m.selected != 2 {
		t.Errorf("selected = %d, want 2 (skipped disabled annotate)", m.selected)
	}
	m.MoveSelection(1)
	if m.selected != 0 {
		t.Errorf("selected = %d, want 0 (wrapped)", m.selected)
	}
	m.MoveSelection(-1)
	if m.selected != 2 {
		t.Errorf("selected = %d, want 2 (backwards skips disabled)", m.selected)
	}
}

func TestMenuActionAt(t *testing.T) {
	var m MenuModel
	m.Sync(menuState(highlight.ModeRemove, true), highlight.Size{Width: 120, Height: 40})

	t.Run("outside misses", func(t *testing.T) {
		if _, ok := m.ActionAt(m.x-1, m.y); ok {
			t.Error("hit outside the menu box")
		}
	})

	t.Run("border row is dead", func(t *testing.T) {
		if _, ok := m.ActionAt(m.x+1, m.y); ok {
			t.Error("hit on the top border")
		}
	})

	t.Run("rows map to items", func(t *testing.T) {
		action, ok := m.ActionAt(m.x+1, m.y+1)
		if !ok || action != menuActionPrimary {
			t.Errorf("row 0 = (%v, %v), want primary", action, ok)
		}
		action, ok = m.ActionAt(m.x+1, m.y+3)
		if !ok || action != menuActionCopy {
			t.Errorf("row 2 = (%v, %v), want copy", action, ok)
		}
		if m.selected != 2 {
			t.Errorf("selected = %d after click, want 2", m.selected)
		}
	})

	t.Run("disabled item does not fire", func(t *testing.T) {
		var dm MenuModel
		dm.Sync(menuState(highlight.ModeRemove, false), highlight.Size{Width: 120, Height: 40})
		if _, ok := dm.ActionAt(dm.x+1, dm.y+2); ok {
			t.Error("disabled annotate fired")
		}
	})
}

func TestMenuSelectedAction(t *testing.T) {
	var m MenuModel
	m.Sync(menuState(highlight.ModeAdd, false), highlight.Size{Width: 120, Height: 40})
	if got := m.SelectedAction(); got != menuActionPrimary {
		t.Errorf("SelectedAction = %v, want primary", got)
	}
	m.MoveSelection(1)
	if got := m.SelectedAction(); got != menuActionCopy {
		t.Errorf("SelectedAction = %v, want copy", got)
	}
}
