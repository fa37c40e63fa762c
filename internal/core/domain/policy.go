package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrQueryTooShort indicates a query below the minimum searchable length.
var ErrQueryTooShort = fmt.Errorf("%w: query too short", ErrInvalidInput)

// SearchPolicy decides which queries are searched and how a failing
// category affects the combined result.
type SearchPolicy struct {
	// MinQueryLength is the shortest trimmed query, in characters.
	MinQueryLength int

	// PartialResults keeps the surviving category when the other fails.
	PartialResults bool
}

// Policy returns the search policy carried by these settings.
func (s SearchSettings) Policy() SearchPolicy {
	return SearchPolicy{
		MinQueryLength: s.MinQueryLength,
		PartialResults: s.PartialResults,
	}
}

// CheckQuery returns ErrEmptyQuery for a blank query and ErrQueryTooShort
// for one with fewer characters than MinQueryLength once trimmed.
func (p SearchPolicy) CheckQuery(query string) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return ErrEmptyQuery
	}
	if utf8.RuneCountInString(trimmed) < p.MinQueryLength {
		return fmt.Errorf("%w: need at least %d characters", ErrQueryTooShort, p.MinQueryLength)
	}
	return nil
}

// SearchReport is what a search run under a SearchPolicy yields.
type SearchReport struct {
	Results []SearchResult

	// Degraded lists categories that failed while the others succeeded.
	// Always empty unless the policy allows partial results.
	Degraded []Category
}
