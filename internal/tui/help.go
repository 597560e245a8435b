package tui

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/pulse/internal/core/styles"
	"github.com/colonyops/pulse/internal/tui/components"
)

//go:embed help.md
var helpMarkdown string

// renderHelpIntro renders the help prose with the active theme. On renderer
// errors the raw markdown is shown.
func renderHelpIntro(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		log.Debug().Err(err).Msg("help: create markdown renderer")
		return helpMarkdown
	}

	out, err := r.Render(helpMarkdown)
	if err != nil {
		log.Debug().Err(err).Msg("help: render markdown")
		return helpMarkdown
	}
	return strings.Trim(out, "\n")
}

func newHelpDialog(keys keyMap, width int) *components.HelpDialog {
	return components.NewHelpDialog("Keyboard shortcuts", renderHelpIntro(min(width-8, 72)), keys.helpSections())
}
