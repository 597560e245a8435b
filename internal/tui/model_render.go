package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/pulse/internal/core/notify"
	"github.com/colonyops/pulse/internal/core/styles"
)

type demoEntry struct {
	key   string
	label string
	kind  notify.Kind
}

var demoEntries = []demoEntry{
	{"1", "Success notification", notify.KindSuccess},
	{"2", "Error notification", notify.KindError},
	{"3", "Warning notification", notify.KindWarning},
	{"4", "Info with action", notify.KindInfo},
	{"5", "Persistent notification", notify.KindInfo},
}

// View implements tea.Model.
func (m Model) View() string {
	header := m.renderHeader()
	footer := m.help.View(m.keys)
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)

	var body string
	switch m.focus {
	case focusSearch:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Top,
			m.search.View(m.app.Search.Snapshot()))
	case focusHelp:
		if m.helpDialog != nil {
			body = m.helpDialog.Overlay(m.width, bodyHeight)
		}
	case focusConfirm:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.confirm.View())
	default:
		body = m.renderMain(bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	left := styles.CommandHeaderStyle.Render("pulse")
	if v := m.opts.Build.Version; v != "" {
		left += " " + styles.MutedStyle.Render(v)
	}
	left += "  " + m.renderTabs()

	bell := styles.IconBell
	if badge := m.app.Notifications.BadgeLabel(); badge != "" {
		bell += " " + styles.BadgeStyle.Render(badge)
	}
	right := styles.MutedStyle.Render(styles.IconSearch+" ctrl+k") + "  " + bell

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := left + strings.Repeat(" ", gap) + right
	return line + "\n" + styles.DividerStyle.Render(strings.Repeat("─", max(m.width, 1)))
}

func (m Model) renderTabs() string {
	tab := func(label string, active bool) string {
		if active {
			return styles.ViewSelectedStyle.Render(label)
		}
		return styles.ViewNormalStyle.Render(label)
	}
	return tab("demo", !m.centerOpen) + styles.DividerStyle.Render(" | ") + tab("center", m.centerOpen)
}

func (m Model) renderMain(height int) string {
	toasts := m.toasts.View(m.toasts.Toasts(m.app.Notifications), m.hoverID, m.drag)
	toastHeight := 0
	if toasts != "" {
		toastHeight = lipgloss.Height(toasts)
	}

	panels := []string{m.renderDemoPanel()}
	if m.centerOpen {
		centerHeight := max(height-toastHeight, 6)
		panels = append(panels, m.center.View(m.app.Notifications.Center(), m.opts.Now(), m.drag, centerHeight))
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, panels...)

	topHeight := max(height-toastHeight, 0)
	top = clipLines(top, topHeight)
	top = lipgloss.NewStyle().Height(topHeight).Render(top)
	if toasts == "" {
		return top
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, toasts))
}

func (m Model) renderDemoPanel() string {
	rows := []string{
		styles.ModalTitleStyle.Render("Notification demo"),
		styles.MutedStyle.Render("Press a key to raise a notification"),
		"",
	}
	for _, d := range demoEntries {
		dot := lipgloss.NewStyle().Foreground(kindColor(d.kind)).Render(kindIcon(d.kind))
		rows = append(rows, fmt.Sprintf("%s %s %s", styles.CommandStyle.Render(d.key), dot, d.label))
	}

	state := m.app.Search.Snapshot()
	rows = append(rows, "", styles.ModalTitleStyle.Render("Search"))
	if strings.TrimSpace(state.Query) == "" {
		rows = append(rows, styles.MutedStyle.Render("ctrl+k to search"))
	} else {
		rows = append(rows, fmt.Sprintf("%q · %s · %d results", state.Query, state.Status, len(state.Results)))
	}
	rows = append(rows, styles.MutedStyle.Render(fmt.Sprintf("%s %d recent searches", styles.IconHistory, len(state.History))))

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(rows, "\n"))
}

// clipLines keeps the first n lines of s.
func clipLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
