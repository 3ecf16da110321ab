package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds application configuration.
type Config struct {
	TranscriptsDir       string `json:"transcriptsDir"`
	DBPath               string `json:"dbPath"`
	FrameInterval        int    `json:"frameIntervalMs"`
	WatchEnabled         *bool  `json:"watchEnabled,omitempty"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
}

// Defaults
const (
	DefaultFrameIntervalMs = 33 // ~30fps
)

// DefaultConfigDir returns the platform-appropriate config directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "marktea")
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, ".config", "marktea")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "marktea")
		}
		return filepath.Join(home, ".config", "marktea")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "marktea")
		}
		return filepath.Join(home, ".config", "marktea")
	}
}

// DefaultTranscriptsDir returns the directory watched for exported
// transcripts when none is configured.
func DefaultTranscriptsDir() string {
	return filepath.Join(DefaultConfigDir(), "transcripts")
}

// DefaultDBPath returns the metadata database location when none is
// configured.
func DefaultDBPath() string {
	return filepath.Join(DefaultConfigDir(), "marktea.db")
}

// Load reads the config file, returning defaults for missing fields.
func Load() (*Config, error) {
	configPath := filepath.Join(DefaultConfigDir(), "config.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	dir := DefaultConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(dir, "config.json")
	tmpPath := configPath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename config: %w", err)
	}

	return nil
}

// FrameIntervalDuration returns the configured animation frame interval as a
// time.Duration.
func (c *Config) FrameIntervalDuration() time.Duration {
	return time.Duration(c.FrameInterval) * time.Millisecond
}

// Watch reports whether the transcript directory watcher is enabled.
func (c *Config) Watch() bool {
	return c.WatchEnabled == nil || *c.WatchEnabled
}

// Default returns a config populated with defaults, used when the config
// file is unreadable.
func Default() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		TranscriptsDir: DefaultTranscriptsDir(),
		DBPath:         DefaultDBPath(),
		FrameInterval:  DefaultFrameIntervalMs,
	}
}

func applyDefaults(cfg *Config) {
	if cfg.TranscriptsDir == "" {
		cfg.TranscriptsDir = DefaultTranscriptsDir()
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}
	if cfg.FrameInterval == 0 {
		cfg.FrameInterval = DefaultFrameIntervalMs
	}
}
