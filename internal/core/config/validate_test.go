package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a Config with all required fields set for testing.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	return &cfg
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_StructuralErrorFirst(t *testing.T) {
	cfg := validConfig(t)
	cfg.Search.HistoryLimit = -1

	err := cfg.ValidateDeep("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history_limit")
}

func TestValidateDeep_ConfigFileIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "config_file", fieldErrs[0].Field)
}

func TestValidateDeep_DataDirIsFile(t *testing.T) {
	cfg := validConfig(t)
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	cfg.DataDir = file

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "data_dir", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "not a directory")
}

func TestValidateDeep_MissingCorpusFile(t *testing.T) {
	cfg := validConfig(t)
	cfg.Search.CorpusFile = filepath.Join(t.TempDir(), "missing.yaml")

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "search.corpus_file", fieldErrs[0].Field)
}

func TestValidateDeep_BlankSeedHistory(t *testing.T) {
	cfg := validConfig(t)
	cfg.Search.SeedHistory = []string{"ok", "  ", ""}

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 2)
	assert.Equal(t, "search.seed_history[1]", fieldErrs[0].Field)
}

func TestWarnings(t *testing.T) {
	cfg := validConfig(t)
	assert.Empty(t, cfg.Warnings())

	cfg.Search.SeedHistory = []string{"a", "b", "c", "d", "e", "f"}
	cfg.Database.Retention = time.Minute
	cfg.Notifications.TickInterval = 10 * time.Second

	warnings := cfg.Warnings()
	require.Len(t, warnings, 3)
	assert.Equal(t, "seed_history", warnings[0].Item)
	assert.Equal(t, "retention", warnings[1].Item)
	assert.Equal(t, "tick_interval", warnings[2].Item)
}

func TestValidateDeep_CorpusGlob(t *testing.T) {
	cfg := validConfig(t)
	dir := t.TempDir()
	cfg.Search.CorpusFile = filepath.Join(dir, "**", "*.yaml")

	err := cfg.ValidateDeep("")
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs[0].Err.Error(), "no files match")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte("candidates: []\n"), 0o644))
	assert.NoError(t, cfg.ValidateDeep(""))
}
