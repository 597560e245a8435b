package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/pulse/internal/app"
	"github.com/colonyops/pulse/internal/core/search"
	"github.com/colonyops/pulse/internal/tui/components"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.focus {
	case focusConfirm:
		return m.handleConfirmKey(msg)
	case focusHelp:
		if key.Matches(msg, m.keys.Back, m.keys.Help, m.keys.Quit) {
			m.focus = m.prevFocus
			m.helpDialog = nil
		}
		return m, nil
	case focusSearch:
		return m.handleSearchKey(msg)
	}

	if key.Matches(msg, m.keys.DragLeft, m.keys.DragRight) {
		if id := m.dragTarget(); id != "" {
			step := dragStep
			if key.Matches(msg, m.keys.DragLeft) {
				step = -dragStep
			}
			m.dragBy(id, step)
			return m, nil
		}
	}

	// Any other key releases the gesture and the toast snaps back.
	m.drag = dragState{}

	if kind, ok := m.demoKind(msg); ok {
		m.app.Demo.Trigger(kind)
		m.syncFocus()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.setHover("")
		m.prevFocus = m.restingFocus()
		m.focus = focusHelp
		m.helpDialog = newHelpDialog(m.keys, m.width)
		return m, nil
	case key.Matches(msg, m.keys.Search):
		return m.openSearch()
	case key.Matches(msg, m.keys.Clear):
		if m.app.Notifications.Len() > 0 {
			m.setHover("")
			m.prevFocus = m.restingFocus()
			m.focus = focusConfirm
			m.confirm = components.NewConfirmModal("Dismiss all notifications?")
		}
		return m, nil
	case key.Matches(msg, m.keys.Center):
		m.toggleCenter()
		return m, nil
	}

	switch m.focus {
	case focusToasts:
		return m.handleToastKey(msg)
	case focusCenter:
		return m.handleCenterKey(msg)
	}

	if key.Matches(msg, m.keys.Focus) {
		m.focusNextToast()
	}
	return m, nil
}

func (m Model) demoKind(msg tea.KeyMsg) (app.DemoKind, bool) {
	bindings := []key.Binding{m.keys.Demo1, m.keys.Demo2, m.keys.Demo3, m.keys.Demo4, m.keys.Demo5}
	for i, b := range bindings {
		if key.Matches(msg, b) {
			return app.DemoKind(i + 1), true
		}
	}
	return 0, false
}

// restingFocus is where focus returns after an overlay closes.
func (m Model) restingFocus() focusArea {
	if m.centerOpen {
		return focusCenter
	}
	return focusMain
}

func (m *Model) toggleCenter() {
	m.setHover("")
	m.centerOpen = !m.centerOpen
	if m.centerOpen {
		m.focus = focusCenter
		m.center.Clamp(m.app.Notifications.Len())
		return
	}
	m.focus = focusMain
}

// focusNextToast cycles hover through the toast stack, top to bottom, and
// leaves toast focus after the last one.
func (m *Model) focusNextToast() {
	toasts := m.toasts.Toasts(m.app.Notifications)
	if len(toasts) == 0 {
		m.setHover("")
		m.focus = m.restingFocus()
		return
	}

	next := 0
	for i, n := range toasts {
		if n.ID == m.hoverID {
			next = i + 1
			break
		}
	}
	if m.hoverID != "" && next >= len(toasts) {
		m.setHover("")
		m.focus = m.restingFocus()
		return
	}

	m.setHover(toasts[next].ID)
	m.focus = focusToasts
}

func (m Model) dragTarget() string {
	switch m.focus {
	case focusToasts:
		return m.hoverID
	case focusCenter:
		if n, ok := m.center.Selected(m.app.Notifications.Center()); ok {
			return n.ID
		}
	}
	return ""
}

func (m *Model) dragBy(id string, step float64) {
	offset := step
	if m.drag.id == id {
		offset += m.drag.offset
	}

	if m.app.Notifications.Drag(id, offset) {
		m.drag = dragState{}
		if m.hoverID == id {
			m.hoverID = ""
			m.focusNextToast()
		}
		m.center.Clamp(m.app.Notifications.Len())
		return
	}
	m.drag = dragState{id: id, offset: offset}
}

func (m Model) handleToastKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Focus):
		m.focusNextToast()
	case key.Matches(msg, m.keys.Dismiss):
		if m.hoverID != "" {
			id := m.hoverID
			m.hoverID = ""
			m.app.Notifications.Remove(id)
			m.focusNextToast()
		}
	case key.Matches(msg, m.keys.Activate):
		if m.hoverID != "" {
			m.app.Notifications.Activate(m.hoverID)
		}
	case key.Matches(msg, m.keys.Back):
		m.setHover("")
		m.focus = m.restingFocus()
	}
	return m, nil
}

func (m Model) handleCenterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.app.Notifications.Center()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.center.Move(-1, len(items))
	case key.Matches(msg, m.keys.Down):
		m.center.Move(1, len(items))
	case key.Matches(msg, m.keys.Dismiss):
		if n, ok := m.center.Selected(items); ok {
			m.app.Notifications.Remove(n.ID)
			m.center.Clamp(len(items) - 1)
		}
	case key.Matches(msg, m.keys.Activate):
		if n, ok := m.center.Selected(items); ok {
			m.app.Notifications.Activate(n.ID)
		}
	case key.Matches(msg, m.keys.Focus):
		m.focusNextToast()
	case key.Matches(msg, m.keys.Back):
		m.toggleCenter()
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.confirm, cmd = m.confirm.Update(msg)
	if !m.confirm.Done() {
		return m, cmd
	}

	if m.confirm.Confirmed() {
		m.app.Notifications.ClearAll()
		m.center.Clamp(0)
	}
	m.focus = m.prevFocus
	return m, cmd
}

func (m Model) openSearch() (tea.Model, tea.Cmd) {
	m.setHover("")
	m.prevFocus = m.restingFocus()
	m.focus = focusSearch

	state := m.app.Search.Snapshot()
	m.search.Open(state.Query)
	// Closing the overlay cancels any pending window, so a remembered query
	// has to be searched again.
	if strings.TrimSpace(state.Query) != "" && state.Status == search.StatusIdle {
		m.app.Search.SetQuery(state.Query)
	}
	return m, textinput.Blink
}

func (m Model) closeSearch() {
	m.app.Search.Close()
	m.search.Blur()
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.app.Search.Snapshot()

	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeSearch()
		m.focus = m.prevFocus
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if q, ok := m.search.SelectedHistory(state); ok {
			m.search.SetValue(q)
			m.app.Search.SetQuery(q)
			return m, nil
		}
		if strings.TrimSpace(m.search.Value()) != "" {
			m.app.Search.CommitQuery(m.search.Value())
		}
		return m, nil

	case msg.Type == tea.KeyUp:
		m.search.Move(-1, listLen(state))
		return m, nil
	case msg.Type == tea.KeyDown:
		m.search.Move(1, listLen(state))
		return m, nil

	case key.Matches(msg, m.keys.DeleteHistory):
		if q, ok := m.search.SelectedHistory(state); ok {
			m.app.Search.RemoveHistoryItem(q)
			m.search.Move(0, len(state.History)-1)
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearQuery):
		m.search.SetValue("")
		m.app.Search.SetQuery("")
		return m, nil

	case key.Matches(msg, m.keys.FilterRow):
		m.search.ToggleFilters()
		return m, nil

	case key.Matches(msg, m.keys.FilterProject):
		m.app.Search.ToggleFilter(search.CategoryProject)
		return m, nil
	case key.Matches(msg, m.keys.FilterCode):
		m.app.Search.ToggleFilter(search.CategoryCode)
		return m, nil
	case key.Matches(msg, m.keys.FilterDocs):
		m.app.Search.ToggleFilter(search.CategoryDocs)
		return m, nil
	}

	return m.updateSearchInput(msg)
}

// updateSearchInput forwards msg to the text input and restarts the search
// when the text changed.
func (m Model) updateSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.search.Value()
	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	if after := m.search.Value(); after != before {
		m.search.cursor = 0
		m.app.Search.SetQuery(after)
	}
	return m, cmd
}
