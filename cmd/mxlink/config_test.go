package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dtessler/mxlink/engine"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigFileOverrides(t *testing.T) {
	path := writeConfig(t, `
start_command = "engine -nodesktop"
buffer_size = 32768
visible = true
history_file = "/tmp/hist"
`)

	cfg := defaultConfig()
	if err := loadConfigFile(path, &cfg); err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.StartCommand != "engine -nodesktop" {
		t.Errorf("unexpected start command: %q", cfg.StartCommand)
	}
	if cfg.BufferSize != 32768 {
		t.Errorf("unexpected buffer size: %d", cfg.BufferSize)
	}
	if !cfg.Visible {
		t.Error("expected visible enabled")
	}
	if cfg.HistoryFile != "/tmp/hist" {
		t.Errorf("unexpected history file: %q", cfg.HistoryFile)
	}
}

func TestLoadConfigFilePartial(t *testing.T) {
	path := writeConfig(t, `buffer_size = 0`)

	cfg := defaultConfig()
	if err := loadConfigFile(path, &cfg); err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.BufferSize != 0 {
		t.Errorf("expected capture disabled, got %d", cfg.BufferSize)
	}
	// Undefined keys keep their defaults.
	if cfg.StartCommand != "" {
		t.Errorf("unexpected start command: %q", cfg.StartCommand)
	}
	if cfg.Visible {
		t.Error("expected visible to keep its default")
	}
}

func TestLoadConfigFileRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
buffer_size = 100
prompt = ">> "
`)

	cfg := defaultConfig()
	if err := loadConfigFile(path, &cfg); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoadConfigFileRejectsNegativeBuffer(t *testing.T) {
	path := writeConfig(t, `buffer_size = -1`)

	cfg := defaultConfig()
	if err := loadConfigFile(path, &cfg); err == nil {
		t.Error("expected error for negative buffer size")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.BufferSize != engine.DefaultBufferSize {
		t.Errorf("unexpected default buffer size: %d", cfg.BufferSize)
	}
	if cfg.Visible {
		t.Error("engine window should default to hidden")
	}
}
