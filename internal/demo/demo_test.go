package demo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shhac/marktea/internal/transcript"
)

func TestSeedWritesLoadableTranscripts(t *testing.T) {
	dir := t.TempDir()

	paths, err := Seed(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != len(sampleThreads) {
		t.Fatalf("wrote %d transcripts, want %d", len(paths), len(sampleThreads))
	}

	for _, path := range paths {
		th, err := transcript.Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", filepath.Base(path), err)
		}
		if len(th.Messages) == 0 {
			t.Errorf("%s: no messages", filepath.Base(path))
		}
		for _, m := range th.Messages {
			switch m.Role {
			case "user", "assistant", "system":
			default:
				t.Errorf("%s: unexpected role %q", filepath.Base(path), m.Role)
			}
			if m.Text == "" {
				t.Errorf("%s: empty message text", filepath.Base(path))
			}
			if m.CreatedAt.IsZero() {
				t.Errorf("%s: missing timestamp on %s", filepath.Base(path), m.ID)
			}
		}
	}
}

func TestSeedSkipsExistingFiles(t *testing.T) {
	dir := t.TempDir()

	existing := filepath.Join(dir, sampleThreads[0].name+".jsonl")
	if err := os.WriteFile(existing, []byte(`{"role":"user","content":"mine"}`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	paths, err := Seed(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != len(sampleThreads)-1 {
		t.Fatalf("wrote %d transcripts, want %d", len(paths), len(sampleThreads)-1)
	}

	data, err := os.ReadFile(existing)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"role":"user","content":"mine"}`+"\n" {
		t.Error("existing file was overwritten")
	}
}

func TestSeedIfEmpty(t *testing.T) {
	t.Run("seeds an empty directory", func(t *testing.T) {
		dir := t.TempDir()
		paths, err := SeedIfEmpty(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(paths) != len(sampleThreads) {
			t.Fatalf("wrote %d transcripts, want %d", len(paths), len(sampleThreads))
		}
	})

	t.Run("leaves a populated directory alone", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "mine.jsonl"), []byte("{}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths, err := SeedIfEmpty(dir)
		if err != nil {
			t.Fatal(err)
		}
		if paths != nil {
			t.Errorf("seeded anyway: %v", paths)
		}
	})

	t.Run("ignores non-transcript files", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths, err := SeedIfEmpty(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(paths) != len(sampleThreads) {
			t.Fatalf("wrote %d transcripts, want %d", len(paths), len(sampleThreads))
		}
	})
}
