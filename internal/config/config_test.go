package config

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()
	if cfg.FrameInterval != DefaultFrameIntervalMs {
		t.Errorf("FrameInterval = %d, want %d", cfg.FrameInterval, DefaultFrameIntervalMs)
	}
	if cfg.TranscriptsDir == "" {
		t.Error("TranscriptsDir empty")
	}
	if cfg.DBPath == "" {
		t.Error("DBPath empty")
	}
	if !cfg.Watch() {
		t.Error("watching disabled by default")
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Run("fills zero values", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		if cfg.FrameInterval != DefaultFrameIntervalMs {
			t.Errorf("FrameInterval = %d, want %d", cfg.FrameInterval, DefaultFrameIntervalMs)
		}
		if cfg.TranscriptsDir != DefaultTranscriptsDir() {
			t.Errorf("TranscriptsDir = %q", cfg.TranscriptsDir)
		}
	})

	t.Run("preserves non-zero values", func(t *testing.T) {
		cfg := &Config{
			TranscriptsDir: "/tmp/exports",
			FrameInterval:  16,
		}
		applyDefaults(cfg)
		if cfg.TranscriptsDir != "/tmp/exports" {
			t.Errorf("TranscriptsDir = %q, want /tmp/exports", cfg.TranscriptsDir)
		}
		if cfg.FrameInterval != 16 {
			t.Errorf("FrameInterval = %d, want 16", cfg.FrameInterval)
		}
	})
}

func TestWatchExplicitlyDisabled(t *testing.T) {
	var cfg Config
	if err := json.Unmarshal([]byte(`{"watchEnabled": false}`), &cfg); err != nil {
		t.Fatal(err)
	}
	applyDefaults(&cfg)
	if cfg.Watch() {
		t.Error("watchEnabled:false did not disable watching")
	}
}

func TestFrameIntervalDuration(t *testing.T) {
	cfg := &Config{FrameInterval: 33}
	if got := cfg.FrameIntervalDuration(); got != 33*time.Millisecond {
		t.Errorf("FrameIntervalDuration = %v", got)
	}
}
