// Package config handles configuration loading and validation for pulse.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Notifications NotificationsConfig `yaml:"notifications"`
	Search        SearchConfig        `yaml:"search"`
	Database      DatabaseConfig      `yaml:"database"`
	TUI           TUIConfig           `yaml:"tui"`
	DataDir       string              `yaml:"-"` // set by caller, not from config file
}

// NotificationsConfig tunes the notification lifecycle manager.
type NotificationsConfig struct {
	DefaultDuration time.Duration `yaml:"default_duration"` // time-to-live when a request sets none
	RecentLimit     int           `yaml:"recent_limit"`     // toasts shown in the stack
	DragThreshold   float64       `yaml:"drag_threshold"`   // gesture distance that dismisses
	TickInterval    time.Duration `yaml:"tick_interval"`    // progress bar refresh rate
	Archive         bool          `yaml:"archive"`          // keep a sqlite log of every notification
}

// SearchConfig tunes the search query pipeline.
type SearchConfig struct {
	Debounce     time.Duration `yaml:"debounce"`
	HistoryLimit int           `yaml:"history_limit"`
	SeedHistory  []string      `yaml:"seed_history"`
	CorpusFile   string        `yaml:"corpus_file"` // optional YAML corpus; relative to the config file
	Persist      bool          `yaml:"persist"`     // remember history across sessions
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	MaxOpenConns  int           `yaml:"max_open_conns"`
	MaxIdleConns  int           `yaml:"max_idle_conns"`
	BusyTimeout   int           `yaml:"busy_timeout"`   // milliseconds
	Retention     time.Duration `yaml:"retention"`      // archived notifications older than this are pruned
	SweepInterval time.Duration `yaml:"sweep_interval"` // how often the retention sweep runs
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Notifications: NotificationsConfig{
			DefaultDuration: 5 * time.Second,
			RecentLimit:     3,
			DragThreshold:   100,
			TickInterval:    100 * time.Millisecond,
			Archive:         true,
		},
		Search: SearchConfig{
			Debounce:     300 * time.Millisecond,
			HistoryLimit: 5,
			SeedHistory: []string{
				"Next.js authentication",
				"Solidity best practices",
				"Tailwind dark mode",
			},
			Persist: true,
		},
		Database: DatabaseConfig{
			MaxOpenConns:  10,
			MaxIdleConns:  5,
			BusyTimeout:   5000,
			Retention:     7 * 24 * time.Hour,
			SweepInterval: 5 * time.Minute,
		},
		TUI: TUIConfig{
			Theme: "tokyo-night",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir

			if cfg.Search.CorpusFile != "" && !filepath.IsAbs(cfg.Search.CorpusFile) {
				cfg.Search.CorpusFile = filepath.Join(filepath.Dir(configPath), cfg.Search.CorpusFile)
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Notifications.DefaultDuration == 0 {
		c.Notifications.DefaultDuration = defaults.Notifications.DefaultDuration
	}
	if c.Notifications.RecentLimit == 0 {
		c.Notifications.RecentLimit = defaults.Notifications.RecentLimit
	}
	if c.Notifications.DragThreshold == 0 {
		c.Notifications.DragThreshold = defaults.Notifications.DragThreshold
	}
	if c.Notifications.TickInterval == 0 {
		c.Notifications.TickInterval = defaults.Notifications.TickInterval
	}
	if c.Search.Debounce == 0 {
		c.Search.Debounce = defaults.Search.Debounce
	}
	if c.Search.HistoryLimit == 0 {
		c.Search.HistoryLimit = defaults.Search.HistoryLimit
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = defaults.Database.MaxOpenConns
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = defaults.Database.MaxIdleConns
	}
	if c.Database.BusyTimeout == 0 {
		c.Database.BusyTimeout = defaults.Database.BusyTimeout
	}
	if c.Database.Retention == 0 {
		c.Database.Retention = defaults.Database.Retention
	}
	if c.Database.SweepInterval == 0 {
		c.Database.SweepInterval = defaults.Database.SweepInterval
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Notifications.DefaultDuration < 0 {
		return fmt.Errorf("notifications.default_duration cannot be negative")
	}

	if c.Notifications.RecentLimit < 1 {
		return fmt.Errorf("notifications.recent_limit must be at least 1")
	}

	if c.Notifications.DragThreshold < 0 {
		return fmt.Errorf("notifications.drag_threshold cannot be negative")
	}

	if c.Notifications.TickInterval < 10*time.Millisecond {
		return fmt.Errorf("notifications.tick_interval must be at least 10ms")
	}

	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce cannot be negative")
	}

	if c.Search.HistoryLimit < 1 {
		return fmt.Errorf("search.history_limit must be at least 1")
	}

	if c.Database.Retention < 0 {
		return fmt.Errorf("database.retention cannot be negative")
	}

	if c.Database.SweepInterval < time.Second {
		return fmt.Errorf("database.sweep_interval must be at least 1s")
	}

	if !isValidTheme(c.TUI.Theme) {
		return fmt.Errorf("tui.theme %q is not a known theme (%v)", c.TUI.Theme, ThemeNames)
	}

	return nil
}

// DatabasePath returns the sqlite database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "pulse.db")
}

// ThemeNames lists the themes the TUI knows about. Kept here rather than
// imported from the styles package so config stays free of rendering deps.
var ThemeNames = []string{"catppuccin", "gruvbox", "kanagawa", "onedark", "tokyo-night"}

func isValidTheme(name string) bool {
	for _, t := range ThemeNames {
		if t == name {
			return true
		}
	}
	return false
}
