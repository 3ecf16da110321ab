package ui

import (
	"time"

	"github.com/shhac/marktea/internal/store"
	"github.com/shhac/marktea/internal/transcript"
)

// -- Session list data --

// SessionsLoadedMsg is sent when the transcript directory has been scanned.
type SessionsLoadedMsg struct {
	Paths []string
	Err   error
}

// SessionSelectedMsg is sent when the user opens a transcript.
type SessionSelectedMsg struct {
	Path string
}

// -- Transcript data --

// ThreadLoadedMsg is sent when a transcript file and its persisted metadata
// have been loaded.
type ThreadLoadedMsg struct {
	Thread *transcript.Thread
	Values map[string]store.MessageValue
	Err    error
}

// TranscriptChangedMsg is sent by the directory watcher when a transcript
// file is (re)written by its exporter.
type TranscriptChangedMsg struct {
	Path string
}

// WatcherClosedMsg is sent when the directory watcher shuts down.
type WatcherClosedMsg struct{}

// -- Frame loop --

// FrameTickMsg drives the per-frame engine work: debounced selection
// evaluation and hover hit testing.
type FrameTickMsg time.Time

// -- Metadata writes --

// ValueWrittenMsg is sent after an async message-value write (star toggle)
// completes.
type ValueWrittenMsg struct {
	MessageKey string
	Value      store.MessageValue
	Err        error
}

// -- Clipboard --

// CopyDoneMsg is sent after a clipboard write attempt.
type CopyDoneMsg struct {
	Err error
}

// -- Overlays --

// ShowAnnotateMsg opens the annotation prompt, seeded with the target
// entry's current annotation and quoting the highlighted text.
type ShowAnnotateMsg struct {
	Seed  string
	Quote string
}

// ShowZoomMsg opens the zoomed single-message overlay.
type ShowZoomMsg struct {
	Title string
	Body  string
}

// AnnotateSubmitMsg is emitted when the annotation prompt is confirmed.
type AnnotateSubmitMsg struct {
	Text string
}

// AnnotateClosedMsg is emitted when the annotation prompt is dismissed.
type AnnotateClosedMsg struct{}

// ZoomClosedMsg is emitted when the zoomed message overlay is dismissed.
type ZoomClosedMsg struct{}

// HelpClosedMsg is sent when the help overlay is dismissed.
type HelpClosedMsg struct{}

// -- Status bar --

// StatusFlashMsg shows a temporary message in the status bar.
type StatusFlashMsg struct {
	Text string
}

// StatusBarClearMsg clears a temporary status message if its sequence number
// is still current.
type StatusBarClearMsg struct {
	Seq int
}
