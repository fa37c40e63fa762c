package mcp

import (
	"context"
	"sync"

	"github.com/custodia-labs/spsearch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	mu       sync.Mutex
	results  []domain.SearchResult
	degraded []domain.Category
	err      error

	searchCalls int
	lastQuery   string
	lastPolicy  domain.SearchPolicy
}

func (m *mockSearchService) SearchAll(context.Context, string) ([]domain.SearchResult, error) {
	panic("tool handlers search through Search")
}

func (m *mockSearchService) SearchOutcome(context.Context, string) (domain.SearchOutcome, error) {
	panic("tool handlers search through Search")
}

func (m *mockSearchService) Search(_ context.Context, query string, policy domain.SearchPolicy) (domain.SearchReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	m.lastQuery = query
	m.lastPolicy = policy
	if m.err != nil {
		return domain.SearchReport{}, m.err
	}
	return domain.SearchReport{Results: m.results, Degraded: m.degraded}, nil
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (domain.Settings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Set(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) Keys() []string {
	return nil
}

func (m *mockSettingsService) Validate() error {
	if m.err != nil {
		return m.err
	}
	return m.settings.Validate()
}

// configuredSettings returns defaults pointing at a test site.
func configuredSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.Site.URL = "https://contoso.sharepoint.com/sites/hr"
	return s
}

func sampleResults() []domain.SearchResult {
	return []domain.SearchResult{
		{ID: "list-1-L", Title: "Onboarding checklist", Category: domain.CategoryListItem, URL: "https://x/1", Description: "Steps", ContainerName: "Tasks"},
		{ID: "doc-/a.docx", Title: "Policy", Category: domain.CategoryDocument, URL: "https://x/a.docx", FileType: "DOCX", Author: "Dana", Modified: "3/4/2024", SizeLabel: "1.5 KB"},
		{ID: "doc-/b.pdf", Title: "Handbook", Category: domain.CategoryDocument, URL: "https://x/b.pdf", FileType: "PDF"},
	}
}
