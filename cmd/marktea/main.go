package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shhac/marktea/internal/config"
	"github.com/shhac/marktea/internal/demo"
	"github.com/shhac/marktea/internal/store"
	"github.com/shhac/marktea/internal/ui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	debug := os.Getenv("MARKTEA_DEBUG") != ""
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--version", "version":
			fmt.Printf("marktea %s (commit: %s, built: %s)\n", version, commit, date)
			os.Exit(0)
		case "--debug":
			debug = true
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config load failed, using defaults: %v\n", err)
		cfg = config.Default()
	}
	if err := os.MkdirAll(cfg.TranscriptsDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create transcripts directory: %v\n", err)
		os.Exit(1)
	}
	if _, err := demo.SeedIfEmpty(cfg.TranscriptsDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not seed sample transcripts: %v\n", err)
	}

	logger := slog.New(slog.DiscardHandler)
	if debug {
		logPath := filepath.Join(config.DefaultConfigDir(), "debug.log")
		if f, err := tea.LogToFile(logPath, "marktea"); err == nil {
			defer f.Close()
			logger = slog.New(slog.NewTextHandler(f, nil))
		}
	}
	slog.SetDefault(logger)

	var st store.Store
	st, err = store.Open(cfg.DBPath)
	if err != nil {
		// Degrade rather than die: highlights still work for this session,
		// they just don't survive exit.
		logger.Warn("metadata store unavailable, using in-memory store", "path", cfg.DBPath, "err", err)
		st = store.NewMemoryStore()
	}
	defer st.Close()

	app := ui.NewApp(cfg, st, logger)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
