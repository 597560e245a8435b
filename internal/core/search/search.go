// Package search turns a free-text query and a set of category filters into a
// debounced, consistent result set, and keeps a bounded search history.
package search

import "slices"

// Category tags a candidate. The set of categories is fixed.
type Category string

const (
	CategoryProject Category = "project"
	CategoryCode    Category = "code"
	CategoryDocs    Category = "docs"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryProject, CategoryCode, CategoryDocs}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// Candidate is a searchable item of the corpus.
type Candidate struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Category    Category `json:"category" yaml:"category"`
	// Relevance is the editorial base score, 0-100.
	Relevance int `json:"relevance" yaml:"relevance"`
}

// Result is a scored match.
type Result struct {
	Candidate
	Score float64 `json:"score"`
}

// Status is the state of the results view.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSettled Status = "settled"
)

// State is a snapshot of a search session.
type State struct {
	Query   string     `json:"query"`
	Filters []Category `json:"filters"`
	Results []Result   `json:"results"`
	Status  Status     `json:"status"`
	History []string   `json:"history"`
}

// DefaultCorpus is the built-in candidate set.
var DefaultCorpus = []Candidate{
	{ID: "1", Title: "DeFi Dashboard", Description: "Real-time cryptocurrency portfolio tracker", Category: CategoryProject, Relevance: 95},
	{ID: "2", Title: "Token.sol", Description: "ERC-20 token implementation", Category: CategoryCode, Relevance: 88},
	{ID: "3", Title: "Material Design 3 Guide", Description: "Complete MD3 implementation guide", Category: CategoryDocs, Relevance: 82},
}

// DefaultSeedHistory is the history a fresh session starts with.
var DefaultSeedHistory = []string{
	"Next.js authentication",
	"Solidity best practices",
	"Tailwind dark mode",
}
