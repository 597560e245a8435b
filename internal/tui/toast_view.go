package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/pulse/internal/core/notify"
	"github.com/colonyops/pulse/internal/core/styles"
)

const (
	toastWidth = 44
	// dragStep is how far one drag key press moves a notification, in the
	// manager's pixel units.
	dragStep = 25.0
)

// dragState tracks an in-progress keyboard drag gesture.
type dragState struct {
	id     string
	offset float64
}

func (d dragState) offsetFor(id string) float64 {
	if d.id != id {
		return 0
	}
	return d.offset
}

// ToastView renders the recent notifications as a stack, oldest at the top.
type ToastView struct {
	limit int
}

// NewToastView creates a stack showing at most limit toasts.
func NewToastView(limit int) *ToastView {
	if limit <= 0 {
		limit = notify.DefaultRecentLimit
	}
	return &ToastView{limit: limit}
}

// Toasts returns the notifications the stack shows, oldest first.
func (v *ToastView) Toasts(m *notify.Manager) []notify.Notification {
	return m.Recent(v.limit)
}

// View renders toasts. focusID marks the hovered toast.
func (v *ToastView) View(toasts []notify.Notification, focusID string, drag dragState) string {
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, n := range toasts {
		rendered = append(rendered, renderToast(n, n.ID == focusID, drag.offsetFor(n.ID)))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func renderToast(n notify.Notification, focused bool, offset float64) string {
	accent := kindColor(n.Kind)
	inner := toastWidth - 4

	title := lipgloss.NewStyle().Foreground(accent).Render(kindIcon(n.Kind)) + " " + styles.ToastTitleStyle.Render(n.Title)
	lines := []string{title}
	if n.Message != "" {
		lines = append(lines, styles.ToastMessageStyle.Width(inner).Render(n.Message))
	}
	if n.HasAction() {
		lines = append(lines, styles.ToastActionStyle.Render(n.Action.Label))
	}

	switch {
	case n.Persistent():
		lines = append(lines, styles.MutedStyle.Render("persistent"))
	case n.Paused:
		lines = append(lines, progressBar(accent, n.RemainingRatio, inner-9)+" "+styles.ToastPausedStyle.Render(styles.IconPause+" paused"))
	default:
		lines = append(lines, progressBar(accent, n.RemainingRatio, inner))
	}

	border := styles.ColorSurface
	if focused {
		border = accent
	}

	box := styles.ToastStyle.
		BorderForeground(border).
		Width(toastWidth - 2).
		Render(strings.Join(lines, "\n"))

	return shift(box, offset)
}

// progressBar draws the remaining countdown as a bar of the given width.
func progressBar(accent lipgloss.Color, ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(math.Round(ratio * float64(width)))

	fill := lipgloss.NewStyle().Foreground(styles.ProgressColor(accent, ratio)).Render(strings.Repeat("━", filled))
	rest := lipgloss.NewStyle().Foreground(styles.ColorSurface).Render(strings.Repeat("─", width-filled))
	return fill + rest
}

// shift indents a block to show a drag gesture. Leftward drags are drawn as
// an arrow gutter because the stack is already flush right.
func shift(block string, offset float64) string {
	if offset == 0 {
		return block
	}
	cols := int(math.Abs(offset) / dragStep * 2)
	label := styles.MutedStyle.Render(fmt.Sprintf("%+.0fpx", offset))
	if offset < 0 {
		return lipgloss.JoinHorizontal(lipgloss.Center, label+" "+strings.Repeat("«", max(cols/2, 1))+" ", block)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, block, " "+strings.Repeat("»", max(cols/2, 1))+" "+label)
}
