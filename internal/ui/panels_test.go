package ui

import "testing"

func TestCalculatePanelSizes(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		height    int
		collapsed bool
		want      PanelSizes
	}{
		{
			"too narrow", 60, 40, false,
			PanelSizes{TooSmall: true},
		},
		{
			"too short", 120, 4, false,
			PanelSizes{TooSmall: true},
		},
		{
			"wide terminal splits by ratio", 150, 50, false,
			PanelSizes{SessionsWidth: 42, TranscriptWidth: 108, PanelHeight: 49},
		},
		{
			"narrow terminal auto-collapses sessions", 90, 30, false,
			PanelSizes{SessionsWidth: 0, TranscriptWidth: 90, PanelHeight: 29},
		},
		{
			"explicit collapse wins at any width", 150, 50, true,
			PanelSizes{SessionsWidth: 0, TranscriptWidth: 150, PanelHeight: 49},
		},
		{
			"ratio floor keeps sessions readable", 100, 40, false,
			PanelSizes{SessionsWidth: 28, TranscriptWidth: 72, PanelHeight: 39},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePanelSizes(tt.width, tt.height, tt.collapsed)
			if got != tt.want {
				t.Errorf("CalculatePanelSizes(%d, %d, %v) = %+v, want %+v",
					tt.width, tt.height, tt.collapsed, got, tt.want)
			}
		})
	}
}

func TestCalculatePanelSizesMinimumTranscript(t *testing.T) {
	got := CalculatePanelSizes(collapseThreshold, 40, false)
	if got.TooSmall {
		t.Fatal("unexpectedly too small")
	}
	if got.TranscriptWidth < minTranscriptWidth {
		t.Errorf("TranscriptWidth = %d, below minimum %d", got.TranscriptWidth, minTranscriptWidth)
	}
	if got.SessionsWidth+got.TranscriptWidth != collapseThreshold {
		t.Errorf("widths sum to %d, want %d", got.SessionsWidth+got.TranscriptWidth, collapseThreshold)
	}
}

func TestPanelNext(t *testing.T) {
	if PanelSessions.Next() != PanelTranscript {
		t.Error("Next from sessions should be transcript")
	}
	if PanelTranscript.Next() != PanelSessions {
		t.Error("Next from transcript should wrap to sessions")
	}
	if PanelSessions.Prev() != PanelSessions.Next() {
		t.Error("with two panels Prev and Next should agree")
	}
}
