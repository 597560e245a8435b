package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/pulse/internal/core/config"
	"github.com/colonyops/pulse/internal/printer"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "pulse config validate [options]",
				Description: "Validates the configuration file, checking durations, limits, the corpus file and the data directory.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

type validationOutput struct {
	Valid    bool                       `json:"valid"`
	Error    string                     `json:"error,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	err := cfg.ValidateDeep(cmd.flags.ConfigPath)

	out := validationOutput{
		Valid:    err == nil,
		Warnings: cfg.Warnings(),
	}
	if err != nil {
		out.Error = err.Error()
	}

	if cmd.format == "json" {
		if werr := writeJSON(c.Root().Writer, out); werr != nil {
			return werr
		}
		if !out.Valid {
			return cli.Exit("", 1)
		}
		return nil
	}

	return cmd.outputText(printer.Ctx(ctx), out)
}

func (cmd *ConfigValidateCmd) outputText(p *printer.Printer, out validationOutput) error {
	if cmd.flags.ConfigPath != "" {
		p.Infof("Config: %s", cmd.flags.ConfigPath)
	}

	for _, warn := range out.Warnings {
		p.Warnf("%s: %s", warn.Category, warn.Message)
		if warn.Item != "" {
			p.Printf("  Item: %s", warn.Item)
		}
	}

	if !out.Valid {
		p.Errorf("%s", out.Error)
		return cli.Exit("", 1)
	}

	p.Successf("Configuration is valid")
	return nil
}
