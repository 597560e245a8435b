package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/colonyops/pulse/internal/core/search"
)

// CorpusCheck inspects the search corpus for entries that can never match
// or that break result ordering.
type CorpusCheck struct {
	corpus []search.Candidate
}

// NewCorpusCheck creates a corpus check.
func NewCorpusCheck(corpus []search.Candidate) *CorpusCheck {
	return &CorpusCheck{corpus: corpus}
}

func (c *CorpusCheck) Name() string {
	return "Search Corpus"
}

func (c *CorpusCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if len(c.corpus) == 0 {
		result.add("candidates", StatusWarn, "corpus is empty; every search returns nothing")
		return result
	}

	perCategory := make(map[search.Category]int)
	seen := make(map[string]bool)
	var problems int
	for _, cand := range c.corpus {
		label := fmt.Sprintf("candidate %s", cand.ID)
		switch {
		case !cand.Category.Valid():
			result.add(label, StatusFail, fmt.Sprintf("unknown category %q", cand.Category))
			problems++
		case seen[cand.ID]:
			result.add(label, StatusFail, "duplicate id")
			problems++
		case strings.TrimSpace(cand.Title) == "" && strings.TrimSpace(cand.Description) == "":
			result.add(label, StatusWarn, "no title or description to match against")
			problems++
		case cand.Relevance < 0 || cand.Relevance > 100:
			result.add(label, StatusWarn, fmt.Sprintf("relevance %d outside 0-100", cand.Relevance))
			problems++
		}
		seen[cand.ID] = true
		perCategory[cand.Category]++
	}

	counts := make([]string, 0, len(search.Categories))
	for _, cat := range search.Categories {
		counts = append(counts, fmt.Sprintf("%d %s", perCategory[cat], cat))
	}
	status := StatusPass
	if problems > 0 {
		status = StatusWarn
	}
	result.Items = append([]CheckItem{{
		Label:  "candidates",
		Status: status,
		Detail: strings.Join(counts, ", "),
	}}, result.Items...)

	return result
}
