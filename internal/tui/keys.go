package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/colonyops/pulse/internal/tui/components"
)

type keyMap struct {
	Quit   key.Binding
	Help   key.Binding
	Search key.Binding
	Center key.Binding
	Focus  key.Binding
	Clear  key.Binding

	Demo1 key.Binding
	Demo2 key.Binding
	Demo3 key.Binding
	Demo4 key.Binding
	Demo5 key.Binding

	Up        key.Binding
	Down      key.Binding
	Dismiss   key.Binding
	Activate  key.Binding
	DragLeft  key.Binding
	DragRight key.Binding
	Back      key.Binding

	FilterRow     key.Binding
	FilterProject key.Binding
	FilterCode    key.Binding
	FilterDocs    key.Binding
	ClearQuery    key.Binding
	DeleteHistory key.Binding
	Select        key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Search: key.NewBinding(key.WithKeys("ctrl+k", "/"), key.WithHelp("ctrl+k", "search")),
		Center: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notifications")),
		Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus toast")),
		Clear:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),

		Demo1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "success")),
		Demo2: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "error")),
		Demo3: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "warning")),
		Demo4: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "info + action")),
		Demo5: key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "persistent")),

		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Dismiss:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
		Activate:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run action")),
		DragLeft:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "drag left")),
		DragRight: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "drag right")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),

		FilterRow:     key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "filters")),
		FilterProject: key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "project filter")),
		FilterCode:    key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("alt+2", "code filter")),
		FilterDocs:    key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("alt+3", "docs filter")),
		ClearQuery:    key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear query")),
		DeleteHistory: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete recent")),
		Select:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Center, k.Focus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Demo1, k.Demo2, k.Demo3, k.Demo4, k.Demo5},
		{k.Center, k.Focus, k.Up, k.Down, k.Dismiss, k.Activate, k.DragLeft, k.DragRight, k.Clear},
		{k.Search, k.FilterRow, k.FilterProject, k.FilterCode, k.FilterDocs, k.Select, k.ClearQuery, k.DeleteHistory},
		{k.Help, k.Back, k.Quit},
	}
}

func (k keyMap) helpSections() []components.HelpDialogSection {
	full := k.FullHelp()
	titles := []string{"Demo", "Notifications", "Search", "General"}
	sections := make([]components.HelpDialogSection, 0, len(full))
	for i, group := range full {
		sections = append(sections, components.SectionFromBindings(titles[i], group...))
	}
	return sections
}
