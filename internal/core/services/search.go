package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/spsearch/internal/core/domain"
	"github.com/custodia-labs/spsearch/internal/core/ports/driven"
	"github.com/custodia-labs/spsearch/internal/core/ports/driving"
	"github.com/custodia-labs/spsearch/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// ErrNoSearcher is returned when the service has no category searcher.
var ErrNoSearcher = errors.New("category searcher unavailable")

// SearchService fans a query out to both content categories.
type SearchService struct {
	searcher driven.CategorySearcher
}

// NewSearchService creates a new search service.
func NewSearchService(searcher driven.CategorySearcher) *SearchService {
	return &SearchService{searcher: searcher}
}

// SearchAll runs both category searches concurrently and joins them.
// List items always precede documents regardless of which call finishes
// first. The first failure cancels the sibling call and is returned as is.
func (s *SearchService) SearchAll(ctx context.Context, query string) ([]domain.SearchResult, error) {
	query, err := s.prepare(query)
	if err != nil {
		return nil, err
	}

	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)
	start := time.Now()

	var listItems, documents []domain.SearchResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		results, err := s.searcher.SearchListItems(gctx, query)
		if err != nil {
			return err
		}
		listItems = results
		return nil
	})
	g.Go(func() error {
		results, err := s.searcher.SearchDocuments(gctx, query)
		if err != nil {
			return err
		}
		documents = results
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Warn("Combined search failed: %v", err)
		return nil, err
	}

	merged := make([]domain.SearchResult, 0, len(listItems)+len(documents))
	merged = append(merged, listItems...)
	merged = append(merged, documents...)

	logger.Info("Results: %d list items, %d documents in %s",
		len(listItems), len(documents), time.Since(start).Round(time.Millisecond))
	return merged, nil
}

// SearchOutcome runs both category searches concurrently and waits for
// both, recording each category's results or error independently.
func (s *SearchService) SearchOutcome(ctx context.Context, query string) (domain.SearchOutcome, error) {
	query, err := s.prepare(query)
	if err != nil {
		return domain.SearchOutcome{}, err
	}

	logger.Section("Search Execution (per category)")
	logger.Debug("Query: %q", query)

	calls := []func(context.Context, string) ([]domain.SearchResult, error){
		s.searcher.SearchListItems,
		s.searcher.SearchDocuments,
	}
	categories := domain.Categories()
	outcomes := make([]domain.CategoryOutcome, len(calls))

	var g errgroup.Group
	for i := range calls {
		g.Go(func() error {
			results, err := calls[i](ctx, query)
			outcomes[i] = domain.CategoryOutcome{Category: categories[i], Results: results, Err: err}
			if err != nil {
				logger.Warn("%s search failed: %v", categories[i], err)
			}
			return nil
		})
	}
	_ = g.Wait() // every call reports through outcomes

	return domain.SearchOutcome{Outcomes: outcomes}, nil
}

// Search checks query against policy, then runs SearchAll, or
// SearchOutcome when the policy allows partial results. With partial
// results a single failing category is reported in Degraded; every
// category failing returns the first error.
func (s *SearchService) Search(ctx context.Context, query string, policy domain.SearchPolicy) (domain.SearchReport, error) {
	return searchWithPolicy(ctx, s, query, policy)
}

// searchWithPolicy applies policy on top of any SearchService.
func searchWithPolicy(ctx context.Context, svc driving.SearchService, query string, policy domain.SearchPolicy) (domain.SearchReport, error) {
	if err := policy.CheckQuery(query); err != nil {
		return domain.SearchReport{}, err
	}

	if !policy.PartialResults {
		results, err := svc.SearchAll(ctx, query)
		if err != nil {
			return domain.SearchReport{}, err
		}
		return domain.SearchReport{Results: results}, nil
	}

	outcome, err := svc.SearchOutcome(ctx, query)
	if err != nil {
		return domain.SearchReport{}, err
	}
	if outcome.AllFailed() {
		return domain.SearchReport{}, outcome.FirstErr()
	}
	failed := outcome.Failed()
	if len(failed) > 0 {
		logger.Warn("Showing partial results, failed categories: %v", failed)
	}
	return domain.SearchReport{Results: outcome.Merged(), Degraded: failed}, nil
}

func (s *SearchService) prepare(query string) (string, error) {
	if s.searcher == nil {
		return "", ErrNoSearcher
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return "", domain.ErrEmptyQuery
	}
	return query, nil
}
