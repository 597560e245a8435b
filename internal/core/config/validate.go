package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/pulse/internal/core/validate"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// file accessibility. The configPath argument specifies the config file location
// to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateSeedHistory(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if len(c.Search.SeedHistory) > c.Search.HistoryLimit {
		warnings = append(warnings, ValidationWarning{
			Category: "Search",
			Item:     "seed_history",
			Message:  fmt.Sprintf("%d entries exceed history_limit %d; extra entries are dropped", len(c.Search.SeedHistory), c.Search.HistoryLimit),
		})
	}

	if c.Database.Retention > 0 && c.Database.Retention < c.Database.SweepInterval {
		warnings = append(warnings, ValidationWarning{
			Category: "Database",
			Item:     "retention",
			Message:  "retention is shorter than sweep_interval; archived notifications may outlive it",
		})
	}

	if c.Notifications.TickInterval > c.Notifications.DefaultDuration {
		warnings = append(warnings, ValidationWarning{
			Category: "Notifications",
			Item:     "tick_interval",
			Message:  "tick_interval exceeds default_duration; progress bars will not animate",
		})
	}

	return warnings
}

// validateFileAccess checks config file, data directory, and corpus file.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("search.corpus_file", c.Search.CorpusFile, corpusExists),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// corpusExists validates that an optional corpus path or glob resolves to at
// least one regular file.
func corpusExists(path string) error {
	if path == "" {
		return nil
	}
	if strings.ContainsAny(path, "*?[{") {
		if !doublestar.ValidatePathPattern(path) {
			return fmt.Errorf("invalid glob pattern %q", path)
		}
		matches, err := doublestar.FilepathGlob(path, doublestar.WithFilesOnly())
		if err != nil {
			return fmt.Errorf("glob: %w", err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("no files match %s", path)
		}
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}

// validateSeedHistory rejects blank seed entries.
func (c *Config) validateSeedHistory() error {
	var errs criterio.FieldErrorsBuilder
	for i, q := range c.Search.SeedHistory {
		if err := validate.Query(q); err != nil {
			errs = errs.Append(fmt.Sprintf("search.seed_history[%d]", i), err)
		}
	}
	return errs.ToError()
}
