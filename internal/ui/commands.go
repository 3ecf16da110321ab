package ui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shhac/marktea/internal/notify"
	"github.com/shhac/marktea/internal/store"
	"github.com/shhac/marktea/internal/transcript"
)

// loadSessionsCmd scans the transcript directory.
func loadSessionsCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		paths, err := transcript.ListFiles(dir)
		return SessionsLoadedMsg{Paths: paths, Err: err}
	}
}

// loadThreadCmd loads a transcript file and its persisted message values.
func loadThreadCmd(st store.Store, path string) tea.Cmd {
	return func() tea.Msg {
		th, err := transcript.Load(path)
		if err != nil {
			return ThreadLoadedMsg{Err: err}
		}
		values, err := st.ReadThread(th.Key)
		if err != nil {
			return ThreadLoadedMsg{Err: err}
		}
		return ThreadLoadedMsg{Thread: th, Values: values}
	}
}

// watchEventsCmd waits for the next coalesced change event from the
// transcript watcher. The handler re-issues it to keep listening.
func watchEventsCmd(w *transcript.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-w.Events()
		if !ok {
			return WatcherClosedMsg{}
		}
		return TranscriptChangedMsg{Path: path}
	}
}

// frameTickCmd schedules the next animation frame.
func frameTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameTickMsg(t)
	})
}

// copyTextCmd writes text to the system clipboard.
func copyTextCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return CopyDoneMsg{Err: clipboard.WriteAll(text)}
	}
}

// writeValueCmd persists a message value and reports the result.
func writeValueCmd(st store.Store, threadKey, messageKey string, v store.MessageValue) tea.Cmd {
	return func() tea.Msg {
		err := st.WriteMessage(threadKey, messageKey, v)
		return ValueWrittenMsg{MessageKey: messageKey, Value: v, Err: err}
	}
}

// statusErrCmd surfaces an error as a status bar flash.
func statusErrCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return StatusFlashMsg{Text: err.Error()}
	}
}

// notifyCmd sends an OS notification, fire and forget.
func notifyCmd(enabled bool, title, body string) tea.Cmd {
	if !enabled {
		return nil
	}
	return func() tea.Msg {
		notify.Send(title, body)
		return nil
	}
}
