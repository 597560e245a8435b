package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), dataDir)
	require.NoError(t, err)

	want := DefaultConfig()
	want.DataDir = dataDir
	assert.Equal(t, &want, cfg)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Notifications.DefaultDuration)
	assert.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
}

func TestLoad_ParsesDurationsAndLists(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
notifications:
  default_duration: 8s
  recent_limit: 4
  drag_threshold: 40
search:
  debounce: 150ms
  history_limit: 10
  seed_history: ["alpha", "beta"]
  corpus_file: corpus.yaml
database:
  retention: 48h
tui:
  theme: gruvbox
`)

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, 8*time.Second, cfg.Notifications.DefaultDuration)
	assert.Equal(t, 4, cfg.Notifications.RecentLimit)
	assert.InDelta(t, 40.0, cfg.Notifications.DragThreshold, 0.001)
	assert.Equal(t, 100*time.Millisecond, cfg.Notifications.TickInterval, "unset field keeps default")
	assert.Equal(t, 150*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, 10, cfg.Search.HistoryLimit)
	assert.Equal(t, []string{"alpha", "beta"}, cfg.Search.SeedHistory)
	assert.Equal(t, filepath.Join(dir, "corpus.yaml"), cfg.Search.CorpusFile, "relative corpus path resolved against config dir")
	assert.Equal(t, 48*time.Hour, cfg.Database.Retention)
	assert.Equal(t, "gruvbox", cfg.TUI.Theme)
	assert.Equal(t, dir, cfg.DataDir)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "notifications: [unclosed")

	_, err := Load(path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "tui:\n  theme: neon\n")

	_, err := Load(path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tui.theme")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty data dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: "data directory"},
		{name: "negative duration", mutate: func(c *Config) { c.Notifications.DefaultDuration = -time.Second }, wantErr: "default_duration"},
		{name: "zero recent limit", mutate: func(c *Config) { c.Notifications.RecentLimit = 0 }, wantErr: "recent_limit"},
		{name: "negative drag threshold", mutate: func(c *Config) { c.Notifications.DragThreshold = -1 }, wantErr: "drag_threshold"},
		{name: "tick too fast", mutate: func(c *Config) { c.Notifications.TickInterval = time.Millisecond }, wantErr: "tick_interval"},
		{name: "negative debounce", mutate: func(c *Config) { c.Search.Debounce = -time.Millisecond }, wantErr: "debounce"},
		{name: "zero history limit", mutate: func(c *Config) { c.Search.HistoryLimit = 0 }, wantErr: "history_limit"},
		{name: "negative retention", mutate: func(c *Config) { c.Database.Retention = -time.Hour }, wantErr: "retention"},
		{name: "sweep too fast", mutate: func(c *Config) { c.Database.SweepInterval = time.Millisecond }, wantErr: "sweep_interval"},
		{name: "unknown theme", mutate: func(c *Config) { c.TUI.Theme = "neon" }, wantErr: "tui.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = t.TempDir()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/var/lib/pulse"
	assert.Equal(t, "/var/lib/pulse/pulse.db", cfg.DatabasePath())
}
