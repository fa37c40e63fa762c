package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/spsearch/internal/core/domain"
)

// --- Mock implementations ---

// mockSearcher implements driven.CategorySearcher for testing.
type mockSearcher struct {
	ListItemsFunc func(ctx context.Context, query string) ([]domain.SearchResult, error)
	DocumentsFunc func(ctx context.Context, query string) ([]domain.SearchResult, error)
}

func (m *mockSearcher) SearchListItems(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if m.ListItemsFunc != nil {
		return m.ListItemsFunc(ctx, query)
	}
	return nil, nil
}

func (m *mockSearcher) SearchDocuments(ctx context.Context, query string) ([]domain.SearchResult, error) {
	if m.DocumentsFunc != nil {
		return m.DocumentsFunc(ctx, query)
	}
	return nil, nil
}

// mockSearchService implements driving.SearchService for testing.
type mockSearchService struct {
	mu      sync.Mutex
	queries []string

	SearchAllFunc     func(ctx context.Context, query string) ([]domain.SearchResult, error)
	SearchOutcomeFunc func(ctx context.Context, query string) (domain.SearchOutcome, error)
}

func (m *mockSearchService) SearchAll(ctx context.Context, query string) ([]domain.SearchResult, error) {
	m.record(query)
	if m.SearchAllFunc != nil {
		return m.SearchAllFunc(ctx, query)
	}
	return []domain.SearchResult{}, nil
}

func (m *mockSearchService) SearchOutcome(ctx context.Context, query string) (domain.SearchOutcome, error) {
	m.record(query)
	if m.SearchOutcomeFunc != nil {
		return m.SearchOutcomeFunc(ctx, query)
	}
	return domain.SearchOutcome{}, nil
}

func (m *mockSearchService) Search(ctx context.Context, query string, policy domain.SearchPolicy) (domain.SearchReport, error) {
	return searchWithPolicy(ctx, m, query, policy)
}

func (m *mockSearchService) record(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
}

func (m *mockSearchService) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// fakeTimer is a Timer that only fires when the test says so.
type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

// fakeScheduler records scheduled callbacks instead of running them.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{delay: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// Active returns timers that have not been stopped.
func (s *fakeScheduler) Active() []*fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var active []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped {
			active = append(active, t)
		}
	}
	return active
}

// All returns every timer ever scheduled.
func (s *fakeScheduler) All() []*fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*fakeTimer(nil), s.timers...)
}

// FireActive runs every callback that is still scheduled.
func (s *fakeScheduler) FireActive() {
	for _, t := range s.Active() {
		t.stopped = true
		t.fn()
	}
}

// fakeOpener implements driven.URLOpener for testing.
type fakeOpener struct {
	opened []string
	err    error
}

func (o *fakeOpener) Open(url string) error {
	o.opened = append(o.opened, url)
	return o.err
}

func listItem(id string) domain.SearchResult {
	return domain.SearchResult{ID: "list-" + id, Title: "Item " + id, Category: domain.CategoryListItem}
}

func document(id string) domain.SearchResult {
	return domain.SearchResult{ID: "doc-" + id, Title: "Doc " + id, Category: domain.CategoryDocument}
}

func resultIDs(results []domain.SearchResult) []string {
	ids := make([]string, len(results))
	for i := range results {
		ids[i] = results[i].ID
	}
	return ids
}
