// Package transcript models externally-owned chat transcripts: threads of
// messages loaded from exported session files, plus the render-time container
// and offset codec the highlight engine maps selections through.
package transcript

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"
)

// Message is one logical chat message in a thread.
type Message struct {
	ID        string
	Role      string // "user", "assistant", "system", ...
	Text      string
	Index     int // position within the thread
	CreatedAt time.Time
}

// Thread is one loaded transcript file.
type Thread struct {
	Key      string // stable key derived from the file path
	Title    string
	Path     string
	Messages []Message
}

// MessageKey returns a stable identity for a message, scoping persisted
// metadata to exactly one message. The export's own ID is used when present;
// otherwise the key is derived from role, position, and a text prefix so it
// survives re-renders and re-loads of unchanged content.
func MessageKey(m Message) string {
	if m.ID != "" {
		return m.ID
	}
	prefix := []rune(m.Text)
	if len(prefix) > 64 {
		prefix = prefix[:64]
	}
	h := sha256.Sum256(fmt.Appendf(nil, "%s\x00%d\x00%s", m.Role, m.Index, string(prefix)))
	return "m-" + hex.EncodeToString(h[:8])
}

// ThreadKey derives a stable thread key from a transcript file path.
func ThreadKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	h := sha256.Sum256([]byte(abs))
	return "t-" + hex.EncodeToString(h[:8])
}
