package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/pulse/internal/app"
	"github.com/colonyops/pulse/internal/core/eventbus"
)

// Run starts the interactive UI and blocks until it exits or ctx is done.
func Run(ctx context.Context, a *app.App, opts Options) error {
	events := NewEventBuffer()
	events.Subscribe(a.Bus)

	a.Bus.PublishTuiStarted(eventbus.TUIStartedPayload{})
	defer a.Bus.PublishTuiStopped(eventbus.TUIStoppedPayload{})

	p := tea.NewProgram(New(a, events, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
