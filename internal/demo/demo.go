// Package demo seeds the transcripts directory with sample conversations so
// a first run has something to read. Seeded files are ordinary JSONL
// transcripts; highlights and notes made on them persist like any other.
package demo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// record is the JSONL line shape the loader accepts.
type record struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// SeedIfEmpty writes the sample transcripts into dir when it contains no
// transcript files yet. It returns the paths written, or nil when the
// directory already has content.
func SeedIfEmpty(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcripts directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".json", ".jsonl":
			return nil, nil
		}
	}
	return Seed(dir)
}

// Seed writes every sample transcript into dir, skipping files that already
// exist so re-running never clobbers user copies.
func Seed(dir string) ([]string, error) {
	var written []string
	for _, th := range sampleThreads {
		path := filepath.Join(dir, th.name+".jsonl")
		if _, err := os.Stat(path); err == nil {
			continue
		}
		data, err := encodeThread(th)
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("failed to write sample transcript: %w", err)
		}
		written = append(written, path)
	}
	return written, nil
}

func encodeThread(th sampleThread) ([]byte, error) {
	var out []byte
	for i, m := range th.messages {
		rec := record{
			ID:        fmt.Sprintf("%s-%03d", th.name, i+1),
			Role:      m.role,
			Content:   m.text,
			Timestamp: baseTime.Add(m.offset).Format("2006-01-02T15:04:05Z07:00"),
		}
		line, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("failed to encode sample message: %w", err)
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out, nil
}
