// Package config loads the console's settings from a TOML file.
//
// Every timing knob in the file is expressed in milliseconds, matching
// the intervals the dashboard server documents. Missing keys fall back
// to defaults, and a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultConfigPath = "~/.config/kinos/config.toml"
	defaultServerURL  = "http://127.0.0.1:8000"
)

// Config holds the server address and the polling and display timings.
type Config struct {
	ServerURL string

	ContentPoll      time.Duration
	NotificationPoll time.Duration
	SuiviPoll        time.Duration
	StatusPoll       time.Duration

	// HighlightDecay is deliberately configurable: deployments of the
	// original server used both 1s and 2s windows.
	HighlightDecay  time.Duration
	NotificationTTL time.Duration
	Flash           time.Duration
}

func defaults() Config {
	return Config{
		ServerURL:        defaultServerURL,
		ContentPoll:      1000 * time.Millisecond,
		NotificationPoll: 500 * time.Millisecond,
		SuiviPoll:        5000 * time.Millisecond,
		StatusPoll:       5000 * time.Millisecond,
		HighlightDecay:   1000 * time.Millisecond,
		NotificationTTL:  5000 * time.Millisecond,
		Flash:            1000 * time.Millisecond,
	}
}

// rawConfig mirrors the on-disk TOML shape. Durations are integer
// milliseconds so the file stays free of unit suffixes.
type rawConfig struct {
	ServerURL          string `toml:"server_url"`
	ContentPollMS      int    `toml:"content_poll_ms"`
	NotificationPollMS int    `toml:"notification_poll_ms"`
	SuiviPollMS        int    `toml:"suivi_poll_ms"`
	StatusPollMS       int    `toml:"status_poll_ms"`
	HighlightDecayMS   int    `toml:"highlight_decay_ms"`
	NotificationTTLMS  int    `toml:"notification_ttl_ms"`
	FlashMS            int    `toml:"flash_ms"`
}

// Load reads the config file at path, or the default location when path
// is empty. A nonexistent file yields the defaults.
func Load(path string) (Config, error) {
	cfg := defaults()

	resolved, err := resolvePath(path)
	if err != nil {
		return cfg, err
	}

	f, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("opening config file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}

	if raw.ServerURL != "" {
		cfg.ServerURL = raw.ServerURL
	}
	applyMS(&cfg.ContentPoll, raw.ContentPollMS)
	applyMS(&cfg.NotificationPoll, raw.NotificationPollMS)
	applyMS(&cfg.SuiviPoll, raw.SuiviPollMS)
	applyMS(&cfg.StatusPoll, raw.StatusPollMS)
	applyMS(&cfg.HighlightDecay, raw.HighlightDecayMS)
	applyMS(&cfg.NotificationTTL, raw.NotificationTTLMS)
	applyMS(&cfg.Flash, raw.FlashMS)

	return cfg, nil
}

func applyMS(dst *time.Duration, ms int) {
	if ms > 0 {
		*dst = time.Duration(ms) * time.Millisecond
	}
}

func resolvePath(path string) (string, error) {
	if path == "" {
		path = defaultConfigPath
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
