// Package tui is the interactive showcase: a toast stack, a notification
// center and a search overlay driven by the core notification manager and
// search pipeline.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/pulse/internal/app"
	"github.com/colonyops/pulse/internal/core/notify"
	"github.com/colonyops/pulse/internal/tui/components"
)

const defaultTickInterval = 100 * time.Millisecond

type focusArea int

const (
	focusMain focusArea = iota
	focusToasts
	focusCenter
	focusSearch
	focusHelp
	focusConfirm
)

type tickMsg time.Time

// Options configures the TUI.
type Options struct {
	// TickInterval is the repaint rate for toast progress bars.
	TickInterval time.Duration
	// RecentLimit caps the toast stack.
	RecentLimit int
	Build       BuildInfo
	// Now defaults to time.Now and is used for relative timestamps.
	Now func() time.Time
}

// Model is the root bubbletea model.
type Model struct {
	app    *app.App
	opts   Options
	keys   keyMap
	help   help.Model
	events *EventBuffer

	toasts     *ToastView
	center     *CenterView
	search     *SearchView
	helpDialog *components.HelpDialog
	confirm    components.ConfirmModal

	focus      focusArea
	prevFocus  focusArea
	centerOpen bool
	hoverID    string
	drag       dragState

	width  int
	height int
}

// New creates the root model. events may be nil, in which case the screen
// only repaints on ticks and key presses.
func New(a *app.App, events *EventBuffer, opts Options) Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = notify.DefaultRecentLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return Model{
		app:    a,
		opts:   opts,
		keys:   defaultKeys(),
		help:   help.New(),
		events: events,
		toasts: NewToastView(opts.RecentLimit),
		center: &CenterView{},
		search: NewSearchView(),
		width:  80,
		height: 24,
	}
}

// Init starts the repaint tick and the event drain loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.waitForEvents())
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitForEvents() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return m.events.WaitForSignal()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		if m.focus == focusHelp {
			m.helpDialog = newHelpDialog(m.keys, m.width)
		}
		return m, nil

	case tickMsg:
		m.syncFocus()
		return m, m.tick()

	case drainEventsMsg:
		if m.events != nil {
			m.events.Drain()
		}
		m.syncFocus()
		return m, m.waitForEvents()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusSearch {
		return m.updateSearchInput(msg)
	}
	return m, nil
}

// syncFocus drops hover and drag state that points at notifications which
// have since left the screen. A hovered toast pushed out of the stack resumes
// its countdown.
func (m *Model) syncFocus() {
	if m.hoverID != "" && !m.toastVisible(m.hoverID) {
		m.setHover("")
		if m.focus == focusToasts {
			m.focus = focusMain
		}
	}
	if m.drag.id != "" {
		if _, ok := m.app.Notifications.Get(m.drag.id); !ok {
			m.drag = dragState{}
		}
	}
}

func (m *Model) toastVisible(id string) bool {
	for _, n := range m.toasts.Toasts(m.app.Notifications) {
		if n.ID == id {
			return true
		}
	}
	return false
}

// setHover moves the pause-on-hover focus to id, resuming the previously
// hovered toast. An empty id clears hover.
func (m *Model) setHover(id string) {
	if m.hoverID == id {
		return
	}
	if m.hoverID != "" {
		m.app.Notifications.Resume(m.hoverID)
	}
	m.hoverID = id
	if id != "" {
		m.app.Notifications.Pause(id)
	}
}
