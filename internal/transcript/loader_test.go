package transcript

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTranscript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}
	return path
}

func TestLoadJSONL(t *testing.T) {
	path := writeTranscript(t, "session.jsonl", `
{"role":"user","content":"What is a goroutine?","id":"u1","timestamp":"2026-03-01T10:00:00Z"}
{"role":"assistant","content":"A goroutine is a lightweight thread managed by the Go runtime."}
not json at all
{"role":"tool","content":"ignored"}
{"role":"assistant","content":[{"type":"text","text":"part one"},{"type":"image"},{"type":"text","text":"part two"}]}
`)

	th, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.Key == "" || th.Title != "session" {
		t.Errorf("thread identity = %q / %q", th.Key, th.Title)
	}
	if len(th.Messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(th.Messages))
	}
	if th.Messages[0].ID != "u1" || th.Messages[0].Role != "user" {
		t.Errorf("first message = %+v", th.Messages[0])
	}
	if th.Messages[0].CreatedAt.IsZero() {
		t.Error("timestamp not parsed")
	}
	if th.Messages[2].Text != "part one\npart two" {
		t.Errorf("text parts joined = %q", th.Messages[2].Text)
	}
	for i, m := range th.Messages {
		if m.Index != i {
			t.Errorf("message %d has index %d", i, m.Index)
		}
	}
}

func TestLoadJSONArray(t *testing.T) {
	path := writeTranscript(t, "export.json", `[
		{"role":"user","text":"hello"},
		{"role":"assistant","text":"hi there"}
	]`)

	th, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(th.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(th.Messages))
	}
}

func TestLoadEnvelopeFormat(t *testing.T) {
	path := writeTranscript(t, "wrapped.jsonl",
		`{"type":"assistant","id":"a1","message":{"role":"assistant","content":"wrapped reply"}}`)

	th, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := th.Messages[0]
	if m.Role != "assistant" || m.Text != "wrapped reply" || m.ID != "a1" {
		t.Errorf("envelope message = %+v", m)
	}
}

func TestLoadEmptyFails(t *testing.T) {
	path := writeTranscript(t, "empty.jsonl", "\n\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load succeeded on an empty transcript")
	}
}

func TestMessageKeyStable(t *testing.T) {
	m := Message{Role: "assistant", Text: "The quick brown fox", Index: 3}
	k1 := MessageKey(m)
	k2 := MessageKey(m)
	if k1 == "" || k1 != k2 {
		t.Fatalf("derived keys differ: %q vs %q", k1, k2)
	}

	other := m
	other.Index = 4
	if MessageKey(other) == k1 {
		t.Error("different positions produced the same key")
	}

	withID := m
	withID.ID = "msg-42"
	if MessageKey(withID) != "msg-42" {
		t.Errorf("explicit ID not used: %q", MessageKey(withID))
	}
}

func TestThreadKeyStable(t *testing.T) {
	if ThreadKey("/tmp/a.jsonl") != ThreadKey("/tmp/a.jsonl") {
		t.Error("same path produced different keys")
	}
	if ThreadKey("/tmp/a.jsonl") == ThreadKey("/tmp/b.jsonl") {
		t.Error("different paths produced the same key")
	}
}
