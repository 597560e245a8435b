package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/pulse/internal/core/notify"
	"github.com/colonyops/pulse/internal/core/search"
	"github.com/colonyops/pulse/internal/core/styles"
)

func kindIcon(k notify.Kind) string {
	switch k {
	case notify.KindSuccess:
		return styles.IconSuccess
	case notify.KindError:
		return styles.IconError
	case notify.KindWarning:
		return styles.IconWarning
	default:
		return styles.IconInfo
	}
}

func kindColor(k notify.Kind) lipgloss.Color {
	switch k {
	case notify.KindSuccess:
		return styles.ColorSuccess
	case notify.KindError:
		return styles.ColorError
	case notify.KindWarning:
		return styles.ColorWarning
	default:
		return styles.ColorInfo
	}
}

func categoryIcon(c search.Category) string {
	switch c {
	case search.CategoryProject:
		return styles.IconProject
	case search.CategoryCode:
		return styles.IconCode
	default:
		return styles.IconDocs
	}
}
