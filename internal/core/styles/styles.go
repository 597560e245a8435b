// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
	ColorInfo       lipgloss.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	CommandStyle       lipgloss.Style
	DividerStyle       lipgloss.Style
	MutedStyle         lipgloss.Style

	// Text styles.
	TextForegroundStyle     lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextPrimaryBoldStyle    lipgloss.Style
	TextMutedStyle          lipgloss.Style
	TextErrorStyle          lipgloss.Style
	TextSuccessStyle        lipgloss.Style
	TextWarningStyle        lipgloss.Style

	// TUI shared styles.
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style

	ViewSelectedStyle lipgloss.Style
	ViewNormalStyle   lipgloss.Style

	// Toast stack.
	ToastStyle        lipgloss.Style
	ToastTitleStyle   lipgloss.Style
	ToastMessageStyle lipgloss.Style
	ToastActionStyle  lipgloss.Style
	ToastPausedStyle  lipgloss.Style

	// Notification center.
	CenterStyle         lipgloss.Style
	CenterItemStyle     lipgloss.Style
	CenterSelectedStyle lipgloss.Style
	CenterEmptyStyle    lipgloss.Style
	BadgeStyle          lipgloss.Style

	// Search overlay.
	SearchStyle           lipgloss.Style
	SearchInputStyle      lipgloss.Style
	SearchChipStyle       lipgloss.Style
	SearchChipActiveStyle lipgloss.Style
	SearchResultStyle     lipgloss.Style
	SearchSelectedStyle   lipgloss.Style
	SearchScoreStyle      lipgloss.Style
	SearchCategoryStyle   lipgloss.Style
	SearchHistoryStyle    lipgloss.Style
	SearchFooterStyle     lipgloss.Style

	// Help and confirm dialogs.
	HelpDialogSectionStyle lipgloss.Style
	ConfirmMessageStyle    lipgloss.Style

	// JSON syntax coloring.
	JSONKeyStyle    lipgloss.Style
	JSONStringStyle lipgloss.Style
	JSONNumberStyle lipgloss.Style
	JSONBoolStyle   lipgloss.Style
	JSONNullStyle   lipgloss.Style
	JSONPunctStyle  lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error
	ColorInfo = p.Info

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommandStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	MutedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	TextForegroundStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	TextPrimaryBoldStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	TextMutedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	TextErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)
	TextForegroundBoldStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	TextSuccessStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	TextWarningStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	ViewSelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	ViewNormalStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	ToastStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	ToastMessageStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	ToastActionStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Underline(true)
	ToastPausedStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Italic(true)

	CenterStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	CenterItemStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorSurface).
		PaddingLeft(1)
	CenterSelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	CenterEmptyStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Padding(1, 2)
	BadgeStyle = lipgloss.NewStyle().
		Background(ColorError).
		Foreground(ColorBackground).
		Bold(true).
		Padding(0, 1)

	SearchStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1)
	SearchInputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(ColorSurface)
	SearchChipStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorSurface).
		Foreground(ColorMuted)
	SearchChipActiveStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(ColorPrimary).
		Foreground(ColorBackground).
		Bold(true)
	SearchResultStyle = lipgloss.NewStyle().
		PaddingLeft(2)
	SearchSelectedStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(ColorPrimary).
		PaddingLeft(1)
	SearchScoreStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	SearchCategoryStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
	SearchHistoryStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	SearchFooterStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)

	HelpDialogSectionStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	ConfirmMessageStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)

	JSONKeyStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
	JSONStringStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	JSONNumberStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	JSONBoolStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
	JSONNullStyle = lipgloss.NewStyle().Foreground(ColorError)
	JSONPunctStyle = lipgloss.NewStyle().Foreground(ColorMuted)
}

// SetThemeByName activates a built-in theme, falling back to the default for
// unknown names. It reports whether the name was known.
func SetThemeByName(name string) bool {
	p, ok := themes[name]
	if !ok {
		SetTheme(themes[DefaultTheme])
		return false
	}
	SetTheme(p)
	return true
}

// ProgressColor is the fill color of a toast progress bar. The bar shifts
// from the accent toward the muted color as ratio drops to zero.
func ProgressColor(accent lipgloss.Color, ratio float64) lipgloss.Color {
	return Blend(ColorMuted, accent, ratio)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
