package transcript

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes a transcripts directory and reports changed files. It is
// the mutation observer for the highlight engine: a change event means the
// host content may regenerate, and consumers must respond with a full
// discard-and-rebuild of rendered highlight state, never an incremental patch.
//
// Write bursts (editors and live sessions write in chunks) are coalesced into
// one event per file per settle window.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan string
	done   chan struct{}
}

const settleWindow = 150 * time.Millisecond

// NewWatcher watches dir for transcript file changes.
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w := &Watcher{
		fs:     fsw,
		events: make(chan string, 16),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Events delivers the path of each changed transcript file.
func (w *Watcher) Events() <-chan string { return w.events }

// Close stops the watcher and closes the events channel.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.events)

	pending := make(map[string]struct{})
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			switch filepath.Ext(ev.Name) {
			case ".json", ".jsonl":
			default:
				continue
			}
			pending[ev.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(settleWindow)
			} else {
				timer.Reset(settleWindow)
			}
			fire = timer.C
		case <-fire:
			for path := range pending {
				select {
				case w.events <- path:
				default:
					// consumer is behind; drop rather than block the loop
				}
				delete(pending, path)
			}
			fire = nil
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}
