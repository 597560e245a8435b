package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestThemeNames(t *testing.T) {
	assert.Equal(t, []string{"catppuccin", "gruvbox", "kanagawa", "onedark", "tokyo-night"}, ThemeNames())
}

func TestSetThemeByName(t *testing.T) {
	t.Cleanup(func() { SetThemeByName(DefaultTheme) })

	assert.True(t, SetThemeByName("gruvbox"))
	assert.Equal(t, lipgloss.Color("#83a598"), ColorPrimary)

	assert.False(t, SetThemeByName("neon"))
	assert.Equal(t, themes[DefaultTheme].Primary, ColorPrimary)
}

func TestBlend(t *testing.T) {
	black := lipgloss.Color("#000000")
	white := lipgloss.Color("#ffffff")

	assert.Equal(t, black, Blend(black, white, 0))
	assert.Equal(t, white, Blend(black, white, 1))
	assert.Equal(t, white, Blend(black, white, 7), "t is clamped")
	assert.Equal(t, lipgloss.Color("nope"), Blend("nope", white, 0.5))
}

func TestGlamourStyle_UsesPalette(t *testing.T) {
	cfg := GlamourStyle()
	if assert.NotNil(t, cfg.Document.Color) {
		assert.Equal(t, string(ColorForeground), *cfg.Document.Color)
	}
}
