package search

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// similarityWeight scales the title similarity bonus added to a candidate's
// base relevance.
const similarityWeight = 10.0

// Match returns the candidates whose title or description contains query
// (case-insensitive) and whose category is in filters, or any category when
// filters is empty. Results are ordered by descending score; ties keep
// corpus order. An empty query matches nothing.
func Match(corpus []Candidate, query string, filters []Category) []Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Result{}
	}

	results := make([]Result, 0, len(corpus))
	for _, c := range corpus {
		if len(filters) > 0 && !slices.Contains(filters, c.Category) {
			continue
		}
		if !strings.Contains(strings.ToLower(c.Title), q) &&
			!strings.Contains(strings.ToLower(c.Description), q) {
			continue
		}
		results = append(results, Result{Candidate: c, Score: score(c, q)})
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})

	return results
}

// score combines the base relevance with how close the query is to the
// whole title, so "token.sol" ranks its exact file above a passing mention.
func score(c Candidate, q string) float64 {
	return float64(c.Relevance) + similarityWeight*similarity(q, strings.ToLower(c.Title))
}

// similarity is 1 - normalised Levenshtein distance, in [0,1].
func similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
