package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/pulse/internal/core/search"
	"github.com/colonyops/pulse/internal/core/styles"
)

const searchWidth = 64

// SearchView is the search overlay: query input, filter chips, recent
// searches and results.
type SearchView struct {
	input       textinput.Model
	cursor      int
	showFilters bool
}

// NewSearchView creates a closed search overlay.
func NewSearchView() *SearchView {
	ti := textinput.New()
	ti.Placeholder = "Search anything..."
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = searchWidth - 8
	return &SearchView{input: ti}
}

// Open focuses the input and syncs it with the session query.
func (v *SearchView) Open(query string) {
	v.input.SetValue(query)
	v.input.CursorEnd()
	v.input.Focus()
	v.cursor = 0
}

// Blur releases input focus.
func (v *SearchView) Blur() {
	v.input.Blur()
}

// Value returns the text in the input.
func (v *SearchView) Value() string {
	return v.input.Value()
}

// SetValue replaces the text in the input.
func (v *SearchView) SetValue(s string) {
	v.input.SetValue(s)
	v.input.CursorEnd()
	v.cursor = 0
}

// ToggleFilters shows or hides the filter chip row.
func (v *SearchView) ToggleFilters() {
	v.showFilters = !v.showFilters
}

// Move shifts the list cursor within n rows.
func (v *SearchView) Move(delta, n int) {
	v.cursor = min(max(v.cursor+delta, 0), max(n-1, 0))
}

// listLen is the number of selectable rows for state.
func listLen(s search.State) int {
	if strings.TrimSpace(s.Query) == "" {
		return len(s.History)
	}
	return len(s.Results)
}

// SelectedHistory returns the history entry under the cursor when the recent
// searches list is showing.
func (v *SearchView) SelectedHistory(s search.State) (string, bool) {
	if strings.TrimSpace(s.Query) != "" || len(s.History) == 0 {
		return "", false
	}
	v.Move(0, len(s.History))
	return s.History[v.cursor], true
}

// View renders the overlay for the session snapshot.
func (v *SearchView) View(s search.State) string {
	input := styles.SearchInputStyle.Width(searchWidth - 4).Render(styles.IconSearch + " " + v.input.View())

	parts := []string{input}
	if v.showFilters || len(s.Filters) > 0 {
		parts = append(parts, renderChips(s.Filters))
	}
	parts = append(parts, "", v.body(s), renderSearchFooter(s))

	return styles.SearchStyle.Width(searchWidth - 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (v *SearchView) body(s search.State) string {
	if strings.TrimSpace(s.Query) == "" {
		return v.historyList(s.History)
	}

	switch s.Status {
	case search.StatusLoading:
		return renderSkeleton()
	case search.StatusIdle:
		return styles.MutedStyle.Render("Type to search")
	}

	if len(s.Results) == 0 {
		return styles.MutedStyle.Render(fmt.Sprintf("No results found for %q", s.Query))
	}

	v.Move(0, len(s.Results))
	rows := make([]string, 0, len(s.Results))
	for i, r := range s.Results {
		rows = append(rows, renderResult(r, i == v.cursor))
	}
	return strings.Join(rows, "\n")
}

func (v *SearchView) historyList(history []string) string {
	header := styles.MutedStyle.Render(styles.IconHistory + " Recent Searches")
	if len(history) == 0 {
		return header + "\n" + styles.CenterEmptyStyle.Render("No recent searches")
	}

	v.Move(0, len(history))
	rows := []string{header}
	for i, item := range history {
		line := styles.SearchHistoryStyle.Render(item)
		if i == v.cursor {
			rows = append(rows, styles.SearchSelectedStyle.Render(line+"  "+styles.MutedStyle.Render(styles.IconClose+" ctrl+d")))
			continue
		}
		rows = append(rows, styles.SearchResultStyle.Render(line))
	}
	return strings.Join(rows, "\n")
}

func renderChips(active []search.Category) string {
	chips := make([]string, 0, len(search.Categories))
	for i, c := range search.Categories {
		label := fmt.Sprintf("%d %s", i+1, c)
		if slices.Contains(active, c) {
			chips = append(chips, styles.SearchChipActiveStyle.Render(label))
			continue
		}
		chips = append(chips, styles.SearchChipStyle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(chips, " "))
}

func renderResult(r search.Result, selected bool) string {
	title := styles.SearchCategoryStyle.Render(categoryIcon(r.Category)) + " " + styles.ModalTitleStyle.Render(r.Title)
	meta := styles.SearchCategoryStyle.Render(string(r.Category)) + " · " +
		styles.SearchScoreStyle.Render(fmt.Sprintf("%d%% match", r.Relevance))
	block := strings.Join([]string{title, styles.MutedStyle.Render(r.Description), meta}, "\n")

	if selected {
		return styles.SearchSelectedStyle.Render(block)
	}
	return styles.SearchResultStyle.Render(block)
}

func renderSkeleton() string {
	rows := make([]string, 0, 3)
	for range 3 {
		rows = append(rows, styles.MutedStyle.Render(strings.Repeat("░", 36)+"\n"+strings.Repeat("░", 24)))
	}
	return strings.Join(rows, "\n")
}

func renderSearchFooter(s search.State) string {
	left := "↑↓ Navigate  ↵ Select  esc Close"
	right := fmt.Sprintf("%d results", len(s.Results))
	gap := max(searchWidth-6-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return styles.SearchFooterStyle.Render(left + strings.Repeat(" ", gap) + right)
}
