package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Schema for the message_meta table. Applied by Open.
const Schema = `
CREATE TABLE IF NOT EXISTS message_meta (
	thread_key  TEXT NOT NULL,
	message_key TEXT NOT NULL,
	starred     INTEGER NOT NULL DEFAULT 0,
	tags        TEXT NOT NULL DEFAULT '[]',
	note        TEXT NOT NULL DEFAULT '',
	highlights  TEXT NOT NULL DEFAULT '[]',
	updated_at  INTEGER NOT NULL,
	PRIMARY KEY (thread_key, message_key)
);
CREATE INDEX IF NOT EXISTS idx_message_meta_thread ON message_meta(thread_key);
`

// SQLiteStore persists message metadata in a local SQLite database.
// Writes are upserts keyed by (thread_key, message_key): the last write wins.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the metadata database at path and applies
// the schema.
func Open(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata db: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) ReadMessage(threadKey, messageKey string) (MessageValue, error) {
	row := s.db.QueryRow(
		`SELECT starred, tags, note, highlights FROM message_meta
		 WHERE thread_key = ? AND message_key = ?`,
		threadKey, messageKey,
	)
	v, err := scanValue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return MessageValue{}, nil
	}
	if err != nil {
		return MessageValue{}, fmt.Errorf("failed to read message value: %w", err)
	}
	return v, nil
}

func (s *SQLiteStore) WriteMessage(threadKey, messageKey string, v MessageValue) error {
	if v.IsZero() {
		_, err := s.db.Exec(
			`DELETE FROM message_meta WHERE thread_key = ? AND message_key = ?`,
			threadKey, messageKey,
		)
		if err != nil {
			return fmt.Errorf("failed to delete message value: %w", err)
		}
		return nil
	}

	tags, err := json.Marshal(tagsOrEmpty(v.Tags))
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}
	highlights, err := json.Marshal(highlightsOrEmpty(v.Highlights))
	if err != nil {
		return fmt.Errorf("failed to marshal highlights: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO message_meta (thread_key, message_key, starred, tags, note, highlights, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(thread_key, message_key) DO UPDATE SET
			starred = excluded.starred,
			tags = excluded.tags,
			note = excluded.note,
			highlights = excluded.highlights,
			updated_at = excluded.updated_at`,
		threadKey, messageKey, boolToInt(v.Starred), string(tags), v.Note,
		string(highlights), time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to write message value: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ReadThread(threadKey string) (map[string]MessageValue, error) {
	rows, err := s.db.Query(
		`SELECT message_key, starred, tags, note, highlights FROM message_meta
		 WHERE thread_key = ?`,
		threadKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read thread values: %w", err)
	}
	defer rows.Close()

	out := make(map[string]MessageValue)
	for rows.Next() {
		var key string
		var starred int
		var tags, note, highlights string
		if err := rows.Scan(&key, &starred, &tags, &note, &highlights); err != nil {
			return nil, fmt.Errorf("failed to scan message value: %w", err)
		}
		v, err := decodeValue(starred, tags, note, highlights)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate thread values: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanValue(row *sql.Row) (MessageValue, error) {
	var starred int
	var tags, note, highlights string
	if err := row.Scan(&starred, &tags, &note, &highlights); err != nil {
		return MessageValue{}, err
	}
	return decodeValue(starred, tags, note, highlights)
}

func decodeValue(starred int, tags, note, highlights string) (MessageValue, error) {
	v := MessageValue{Starred: starred != 0, Note: note}
	if err := json.Unmarshal([]byte(tags), &v.Tags); err != nil {
		return MessageValue{}, fmt.Errorf("failed to parse tags: %w", err)
	}
	if err := json.Unmarshal([]byte(highlights), &v.Highlights); err != nil {
		return MessageValue{}, fmt.Errorf("failed to parse highlights: %w", err)
	}
	if len(v.Tags) == 0 {
		v.Tags = nil
	}
	if len(v.Highlights) == 0 {
		v.Highlights = nil
	}
	return v, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func highlightsOrEmpty(hs []Highlight) []Highlight {
	if hs == nil {
		return []Highlight{}
	}
	return hs
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
