package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dtessler/mxlink/engine"
	"github.com/spf13/cobra"
)

type config struct {
	StartCommand string
	BufferSize   int
	Visible      bool
	HistoryFile  string
}

type fileConfig struct {
	StartCommand string `toml:"start_command"`
	BufferSize   int    `toml:"buffer_size"`
	Visible      bool   `toml:"visible"`
	HistoryFile  string `toml:"history_file"`
}

func defaultConfig() config {
	home, _ := os.UserHomeDir()
	return config{
		BufferSize:  engine.DefaultBufferSize,
		HistoryFile: filepath.Join(home, ".mxlink_history"),
	}
}

func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "mxlink", "config.toml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "mxlink", "config.toml")
	}
	return ""
}

// loadConfigFile overlays the TOML file at path onto cfg. Only keys defined
// in the file are touched.
func loadConfigFile(path string, cfg *config) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("load config: unknown keys: %s", strings.Join(keys, ", "))
	}

	if meta.IsDefined("start_command") {
		cfg.StartCommand = strings.TrimSpace(raw.StartCommand)
	}
	if meta.IsDefined("buffer_size") {
		if raw.BufferSize < 0 {
			return fmt.Errorf("load config: buffer_size must not be negative, got %d", raw.BufferSize)
		}
		cfg.BufferSize = raw.BufferSize
	}
	if meta.IsDefined("visible") {
		cfg.Visible = raw.Visible
	}
	if meta.IsDefined("history_file") {
		cfg.HistoryFile = raw.HistoryFile
	}
	return nil
}

// resolveConfig layers defaults, then the config file, then explicit flags.
func resolveConfig(cmd *cobra.Command) (config, error) {
	cfg := defaultConfig()

	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if path != "" {
		if err := loadConfigFile(path, &cfg); err != nil {
			// A missing default config is fine; a missing explicit one is not.
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return config{}, err
			}
		}
	}

	if cmd.Flags().Changed("start-cmd") {
		cfg.StartCommand, _ = cmd.Flags().GetString("start-cmd")
	}
	if cmd.Flags().Changed("buffer") {
		cfg.BufferSize, _ = cmd.Flags().GetInt("buffer")
	}
	if cmd.Flags().Changed("visible") {
		cfg.Visible, _ = cmd.Flags().GetBool("visible")
	}
	return cfg, nil
}
