package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings bookbasket reads at startup.
type Config struct {
	SeedPath     string // empty uses the built-in catalog
	LogPath      string
	LogLevel     slog.Level
	OTLPEndpoint string // empty disables trace export
}

const (
	defaultConfigPath = "~/.config/bookbasket/config.toml"
	defaultLogPath    = "~/.local/state/bookbasket/bookbasket.log"
)

// Load locates and parses the config file, falling back to defaults when it is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{LogPath: mustExpand(defaultLogPath), LogLevel: slog.LevelInfo}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		SeedPath     string `toml:"seed_path"`
		LogPath      string `toml:"log_path"`
		LogLevel     string `toml:"log_level"`
		OTLPEndpoint string `toml:"otlp_endpoint"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if seed := strings.TrimSpace(raw.SeedPath); seed != "" {
		cfg.SeedPath = mustExpand(seed)
	}

	if logPath := strings.TrimSpace(raw.LogPath); logPath != "" {
		cfg.LogPath = mustExpand(logPath)
	}

	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("parse config: log_level: %w", err)
		}
	}

	cfg.OTLPEndpoint = strings.TrimSpace(raw.OTLPEndpoint)

	return cfg, nil
}

// ExpandPath resolves a leading ~ to the home directory and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}
