package doctor

import (
	"context"
	"os"

	"github.com/colonyops/pulse/internal/core/config"
)

// ConfigCheck validates the loaded configuration and reports its warnings.
type ConfigCheck struct {
	cfg  *config.Config
	path string
}

// NewConfigCheck creates a config check. path is the config file location;
// a missing file means defaults are in use.
func NewConfigCheck(cfg *config.Config, path string) *ConfigCheck {
	return &ConfigCheck{cfg: cfg, path: path}
}

func (c *ConfigCheck) Name() string {
	return "Configuration"
}

func (c *ConfigCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if _, err := os.Stat(c.path); os.IsNotExist(err) {
		result.add("config file", StatusPass, "not found, using defaults")
	} else {
		result.add("config file", StatusPass, c.path)
	}

	if err := c.cfg.ValidateDeep(c.path); err != nil {
		result.add("validation", StatusFail, err.Error())
		return result
	}
	result.add("validation", StatusPass, "")

	for _, w := range c.cfg.Warnings() {
		label := w.Category
		if w.Item != "" {
			label += "." + w.Item
		}
		result.add(label, StatusWarn, w.Message)
	}

	return result
}
