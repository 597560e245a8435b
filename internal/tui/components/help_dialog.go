// Package components provides reusable TUI components.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/pulse/internal/core/styles"
)

// HelpEntry represents a single keyboard shortcut entry.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpDialogSection groups related help entries under a title.
type HelpDialogSection struct {
	Title   string
	Entries []HelpEntry
}

// SectionFromBindings builds a section from key bindings, skipping disabled ones.
func SectionFromBindings(title string, bindings ...key.Binding) HelpDialogSection {
	section := HelpDialogSection{Title: title}
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		section.Entries = append(section.Entries, HelpEntry{Key: h.Key, Desc: h.Desc})
	}
	return section
}

// HelpDialog displays all available keyboard shortcuts.
type HelpDialog struct {
	title    string
	intro    string
	sections []HelpDialogSection
}

// NewHelpDialog creates a new help dialog with the given sections. intro is
// pre-rendered text shown above the shortcuts.
func NewHelpDialog(title, intro string, sections []HelpDialogSection) *HelpDialog {
	return &HelpDialog{
		title:    title,
		intro:    intro,
		sections: sections,
	}
}

// View renders the help dialog.
func (h *HelpDialog) View() string {
	var lines []string
	separator := styles.TextMutedStyle.Render(strings.Repeat("─", 25))

	for i, section := range h.sections {
		if section.Title != "" {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, styles.HelpDialogSectionStyle.Render(section.Title), separator)
		}

		for _, entry := range section.Entries {
			lines = append(lines, formatKeyDesc(entry.Key, entry.Desc))
		}
	}

	parts := []string{styles.ModalTitleStyle.Render(h.title)}
	if h.intro != "" {
		parts = append(parts, strings.TrimRight(h.intro, "\n"))
	}
	parts = append(parts, "", strings.Join(lines, "\n"), styles.ModalHelpStyle.Render("esc/? close"))

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// Overlay renders the dialog centered in a width x height area.
func (h *HelpDialog) Overlay(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, h.View())
}

func formatKeyDesc(key, desc string) string {
	const keyWidth = 12
	return styles.TextPrimaryBoldStyle.Render(PadRight(key, keyWidth)) + styles.TextForegroundStyle.Render(desc)
}
