// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/pulse/internal/core/search"
)

// Query validates a search query is non-empty after trimming whitespace.
func Query(q string) error {
	if strings.TrimSpace(q) == "" {
		return fmt.Errorf("query is blank")
	}
	return nil
}

// QueryField returns a criterio validator for search queries.
func QueryField(field, q string) error {
	return criterio.Run(field, q, Query)
}

// Category validates a category tag. Matching is case-insensitive.
func Category(tag string) error {
	if !search.Category(strings.ToLower(strings.TrimSpace(tag))).Valid() {
		return fmt.Errorf("unknown category %q (valid: %s)", tag, CategoryList())
	}
	return nil
}

// CategoryField returns a criterio validator for category tags.
func CategoryField(field, tag string) error {
	return criterio.Run(field, tag, Category)
}

// CategoryList returns the valid category names joined for messages.
func CategoryList() string {
	names := make([]string, len(search.Categories))
	for i, c := range search.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
