package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// rawMessage tolerates the field spellings used by common transcript exports:
// {role, content} (string or text-part array), {role, text}, and
// {type, message} wrappers. Unknown records are skipped.
type rawMessage struct {
	ID        string          `json:"id"`
	Role      string          `json:"role"`
	Type      string          `json:"type"`
	Content   json.RawMessage `json:"content"`
	Text      string          `json:"text"`
	Message   json.RawMessage `json:"message"`
	Timestamp string          `json:"timestamp"`
}

// Load reads a transcript file. Files are either JSONL (one message object
// per line) or a single JSON array of message objects.
func Load(path string) (*Thread, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}

	var raws []rawMessage
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &raws); err != nil {
			return nil, fmt.Errorf("failed to parse transcript array: %w", err)
		}
	} else {
		raws = parseLines(data)
	}

	t := &Thread{
		Key:   ThreadKey(path),
		Title: threadTitle(path),
		Path:  path,
	}
	for _, raw := range raws {
		if m, ok := toMessage(raw, len(t.Messages)); ok {
			t.Messages = append(t.Messages, m)
		}
	}
	if len(t.Messages) == 0 {
		return nil, fmt.Errorf("no messages found in %s", filepath.Base(path))
	}
	return t, nil
}

// parseLines decodes JSONL input, skipping blank and malformed lines so one
// bad record never discards a whole session.
func parseLines(data []byte) []rawMessage {
	var out []rawMessage
	sc := bufio.NewScanner(strings.NewReader(string(data)))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var raw rawMessage
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			continue
		}
		out = append(out, raw)
	}
	return out
}

// toMessage converts one raw record, unwrapping {type, message} envelopes.
func toMessage(raw rawMessage, index int) (Message, bool) {
	if len(raw.Message) > 0 && raw.Role == "" {
		var inner rawMessage
		if err := json.Unmarshal(raw.Message, &inner); err == nil {
			if inner.ID == "" {
				inner.ID = raw.ID
			}
			if inner.Timestamp == "" {
				inner.Timestamp = raw.Timestamp
			}
			if inner.Role == "" {
				inner.Role = raw.Type
			}
			raw = inner
		}
	}

	role := raw.Role
	if role == "" {
		role = raw.Type
	}
	switch role {
	case "user", "assistant", "system":
	default:
		return Message{}, false
	}

	text := raw.Text
	if text == "" {
		text = decodeContent(raw.Content)
	}
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return Message{}, false
	}

	m := Message{
		ID:    raw.ID,
		Role:  role,
		Text:  text,
		Index: index,
	}
	if raw.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, raw.Timestamp); err == nil {
			m.CreatedAt = ts
		}
	}
	return m, true
}

// decodeContent handles both string content and text-part arrays
// ([{type: "text", text: "..."}]).
func decodeContent(content json.RawMessage) string {
	if len(content) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return s
	}
	var parts []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(content, &parts); err != nil {
		return ""
	}
	var b strings.Builder
	for _, p := range parts {
		if p.Type != "" && p.Type != "text" {
			continue
		}
		if b.Len() > 0 && p.Text != "" {
			b.WriteString("\n")
		}
		b.WriteString(p.Text)
	}
	return b.String()
}

func threadTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ListFiles returns the transcript files (.json / .jsonl) in dir, sorted by
// modification time, newest first.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list transcripts: %w", err)
	}
	type fileInfo struct {
		path string
		mod  time.Time
	}
	var files []fileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".json", ".jsonl":
		default:
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{path: filepath.Join(dir, e.Name()), mod: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].mod.After(files[j].mod) })
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.path
	}
	return out, nil
}
