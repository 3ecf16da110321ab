// Package store persists per-message transcript metadata: star, tags, note,
// and inline highlights. Message values are read and written whole; callers
// that own a single field must read-modify-write and leave the rest intact.
package store

import "sync"

// Highlight is one persisted inline highlight over a message's visible text.
// Start and End are rune offsets into the message's visible text, half-open
// [Start, End). Text is the substring captured at creation time and is
// display-only; it is never re-validated against the live message.
type Highlight struct {
	ID         string `json:"id"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Text       string `json:"text"`
	Annotation string `json:"annotation,omitempty"`
}

// MessageValue is the full persisted value for one message. The highlight
// engine owns only the Highlights field; Starred, Tags, and Note belong to
// sibling subsystems and must survive highlight updates untouched.
type MessageValue struct {
	Starred    bool        `json:"starred,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
	Note       string      `json:"note,omitempty"`
	Highlights []Highlight `json:"highlights,omitempty"`
}

// IsZero reports whether the value carries no metadata at all.
func (v MessageValue) IsZero() bool {
	return !v.Starred && len(v.Tags) == 0 && v.Note == "" && len(v.Highlights) == 0
}

// Store is the key-value collaborator holding message metadata.
//
// There are no transactions and no compare-and-swap: concurrent or rapidly
// sequential writes to the same message are last-write-wins. Within one user
// action callers perform a sequential read-modify-write.
type Store interface {
	// ReadMessage returns the stored value for a message, or the zero value
	// if none has been written.
	ReadMessage(threadKey, messageKey string) (MessageValue, error)

	// WriteMessage replaces the stored value for a message. A zero value
	// deletes the row.
	WriteMessage(threadKey, messageKey string, v MessageValue) error

	// ReadThread returns all non-empty message values for a thread, keyed
	// by message key.
	ReadThread(threadKey string) (map[string]MessageValue, error)

	Close() error
}

// MemoryStore is an in-process Store used in tests and as a fallback when the
// on-disk database cannot be opened. Contents are lost on exit.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]map[string]MessageValue
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]map[string]MessageValue)}
}

func (s *MemoryStore) ReadMessage(threadKey, messageKey string) (MessageValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneValue(s.values[threadKey][messageKey]), nil
}

func (s *MemoryStore) WriteMessage(threadKey, messageKey string, v MessageValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.IsZero() {
		delete(s.values[threadKey], messageKey)
		return nil
	}
	if s.values[threadKey] == nil {
		s.values[threadKey] = make(map[string]MessageValue)
	}
	s.values[threadKey][messageKey] = cloneValue(v)
	return nil
}

func (s *MemoryStore) ReadThread(threadKey string) (map[string]MessageValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]MessageValue, len(s.values[threadKey]))
	for k, v := range s.values[threadKey] {
		out[k] = cloneValue(v)
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

// cloneValue deep-copies slices so callers can't mutate stored state.
func cloneValue(v MessageValue) MessageValue {
	out := v
	if v.Tags != nil {
		out.Tags = append([]string(nil), v.Tags...)
	}
	if v.Highlights != nil {
		out.Highlights = append([]Highlight(nil), v.Highlights...)
	}
	return out
}
