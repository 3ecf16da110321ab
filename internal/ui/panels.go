package ui

// Panel identifies which panel has focus.
type Panel int

const (
	PanelSessions   Panel = iota // session list
	PanelTranscript              // transcript reader
)

// AppMode represents the current input mode.
type AppMode int

const (
	ModeNavigation AppMode = iota
	ModeVisual             // keyboard line selection in the transcript
	ModeOverlay            // a modal overlay (annotate, zoom, help) owns input
)

// Layout constants
const (
	minSessionsWidth   = 24
	minTranscriptWidth = 40
	minTotalWidth      = 70

	collapseThreshold = 100

	sessionsRatio = 0.28

	statusBarHeight = 1
)

// PanelSizes holds calculated panel dimensions.
type PanelSizes struct {
	SessionsWidth   int
	TranscriptWidth int
	PanelHeight     int
	TooSmall        bool
}

// CalculatePanelSizes determines panel widths based on terminal dimensions
// and whether the session list is collapsed.
func CalculatePanelSizes(termWidth, termHeight int, sessionsCollapsed bool) PanelSizes {
	if termWidth < minTotalWidth {
		return PanelSizes{TooSmall: true}
	}

	panelHeight := termHeight - statusBarHeight
	if panelHeight < 5 {
		return PanelSizes{TooSmall: true}
	}

	autoCollapse := termWidth < collapseThreshold
	if sessionsCollapsed || autoCollapse {
		return PanelSizes{
			SessionsWidth:   0,
			TranscriptWidth: termWidth,
			PanelHeight:     panelHeight,
		}
	}

	sessionsW := max(minSessionsWidth, int(float64(termWidth)*sessionsRatio))
	transcriptW := termWidth - sessionsW
	if transcriptW < minTranscriptWidth {
		transcriptW = minTranscriptWidth
		sessionsW = termWidth - transcriptW
	}

	return PanelSizes{
		SessionsWidth:   sessionsW,
		TranscriptWidth: transcriptW,
		PanelHeight:     panelHeight,
	}
}

func (p Panel) Next() Panel {
	if p == PanelSessions {
		return PanelTranscript
	}
	return PanelSessions
}

func (p Panel) Prev() Panel {
	return p.Next()
}
