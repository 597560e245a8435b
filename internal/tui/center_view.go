package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/pulse/internal/core/notify"
	"github.com/colonyops/pulse/internal/core/styles"
)

const centerWidth = 46

// CenterView renders the notification center: every active notification,
// newest first, with a cursor.
type CenterView struct {
	cursor int
}

// Clamp keeps the cursor inside a list of n items.
func (c *CenterView) Clamp(n int) {
	c.cursor = min(max(c.cursor, 0), max(n-1, 0))
}

// Move shifts the cursor by delta within a list of n items.
func (c *CenterView) Move(delta, n int) {
	c.cursor += delta
	c.Clamp(n)
}

// Selected returns the notification under the cursor.
func (c *CenterView) Selected(items []notify.Notification) (notify.Notification, bool) {
	if len(items) == 0 {
		return notify.Notification{}, false
	}
	c.Clamp(len(items))
	return items[c.cursor], true
}

// View renders the center panel with the given height.
func (c *CenterView) View(items []notify.Notification, now time.Time, drag dragState, height int) string {
	header := styles.ModalTitleStyle.Render(fmt.Sprintf("%s Notifications", styles.IconBell))
	if len(items) > 0 {
		header += "  " + styles.MutedStyle.Render(fmt.Sprintf("%d active · C clear all", len(items)))
	}

	var body string
	if len(items) == 0 {
		body = styles.CenterEmptyStyle.Render("No notifications")
	} else {
		c.Clamp(len(items))
		rows := make([]string, 0, len(items))
		for i, n := range items {
			rows = append(rows, renderCenterItem(n, i == c.cursor, now, drag.offsetFor(n.ID)))
		}
		body = strings.Join(rows, "\n")
	}

	return styles.CenterStyle.
		Width(centerWidth - 2).
		MaxHeight(max(height, 3)).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, "", body))
}

func renderCenterItem(n notify.Notification, selected bool, now time.Time, offset float64) string {
	style := styles.CenterItemStyle
	if selected {
		style = styles.CenterSelectedStyle
	}

	title := lipgloss.NewStyle().Foreground(kindColor(n.Kind)).Render(kindIcon(n.Kind)) + " " + styles.ToastTitleStyle.Render(n.Title)
	meta := styles.MutedStyle.Render(relativeTime(now.Sub(n.CreatedAt)))
	if n.Paused {
		meta += " " + styles.ToastPausedStyle.Render("paused")
	}
	if n.HasAction() {
		meta += " " + styles.ToastActionStyle.Render(n.Action.Label)
	}

	lines := []string{title}
	if n.Message != "" {
		lines = append(lines, styles.ToastMessageStyle.Width(centerWidth-8).Render(n.Message))
	}
	lines = append(lines, meta)

	return shift(style.Render(strings.Join(lines, "\n")), offset)
}

func relativeTime(d time.Duration) string {
	switch {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
}
