package driving

import (
	"context"

	"github.com/custodia-labs/spsearch/internal/core/domain"
)

// SearchService provides combined search across both content categories.
type SearchService interface {
	// SearchAll queries both categories in parallel and returns list items
	// followed by documents. Any category failure fails the whole call.
	SearchAll(ctx context.Context, query string) ([]domain.SearchResult, error)

	// SearchOutcome queries both categories in parallel and reports each
	// category's result or error separately.
	SearchOutcome(ctx context.Context, query string) (domain.SearchOutcome, error)

	// Search checks query against policy and runs it, fail-fast or
	// per category as the policy says.
	Search(ctx context.Context, query string, policy domain.SearchPolicy) (domain.SearchReport, error)
}

// SearchController mediates between user input and SearchService.
// It owns the interactive SearchState.
type SearchController interface {
	// SetQuery records new input text and schedules a debounced search.
	SetQuery(query string)

	// Submit dispatches a search for the current query immediately.
	Submit()

	// Clear cancels pending work and resets query, results and error.
	Clear()

	// SelectTab changes the display filter.
	SelectTab(tab domain.Tab)

	// State returns a snapshot of the current state.
	State() domain.SearchState

	// Subscribe registers fn to receive a snapshot after every change.
	Subscribe(fn func(domain.SearchState))

	// Reconfigure replaces the dispatch configuration, e.g. after the
	// configuration file changed. Pending and in-flight work is kept.
	Reconfigure(settings domain.Settings)

	// Close cancels pending and in-flight searches and waits for them.
	Close()
}
