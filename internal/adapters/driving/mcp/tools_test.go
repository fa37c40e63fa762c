package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/spsearch/internal/core/domain"
)

func newTestServer(t *testing.T, search *mockSearchService, settings *mockSettingsService, opts ...Option) *Server {
	t.Helper()
	ports := &Ports{Search: search}
	if settings != nil {
		ports.Settings = settings
	}
	server, err := NewServer(ports, opts...)
	require.NoError(t, err)
	return server
}

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns all results with counts", func(t *testing.T) {
		search := &mockSearchService{results: sampleResults()}
		server := newTestServer(t, search, &mockSettingsService{settings: configuredSettings()})

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "  policy  "})

		require.NoError(t, err)
		assert.Equal(t, "policy", search.lastQuery)
		assert.Equal(t, "policy", output.Query)
		assert.Equal(t, "all", output.Tab)
		assert.Equal(t, 3, output.Count)
		assert.Equal(t, CountsOutput{All: 3, ListItems: 1, Documents: 2}, output.Counts)
		require.Len(t, output.Results, 3)
		assert.Equal(t, "list-1-L", output.Results[0].ID)
		assert.Equal(t, "ListItem", output.Results[0].Category)
		assert.Equal(t, "Tasks", output.Results[0].Container)
		assert.Equal(t, "DOCX", output.Results[1].FileType)
		assert.Equal(t, "1.5 KB", output.Results[1].Size)
		assert.Empty(t, output.Degraded)
	})

	t.Run("tab filters results but not counts", func(t *testing.T) {
		search := &mockSearchService{results: sampleResults()}
		server := newTestServer(t, search, &mockSettingsService{settings: configuredSettings()})

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "policy", Tab: "documents"})

		require.NoError(t, err)
		assert.Equal(t, "documents", output.Tab)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, 3, output.Counts.All)
		for _, r := range output.Results {
			assert.Equal(t, "Document", r.Category)
		}
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		search := &mockSearchService{}
		server := newTestServer(t, search, &mockSettingsService{settings: configuredSettings()})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "   "})

		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
		assert.Zero(t, search.searchCalls)
	})

	t.Run("unknown tab is rejected", func(t *testing.T) {
		search := &mockSearchService{}
		server := newTestServer(t, search, &mockSettingsService{settings: configuredSettings()})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "policy", Tab: "pages"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Zero(t, search.searchCalls)
	})

	t.Run("unconfigured site is rejected", func(t *testing.T) {
		search := &mockSearchService{}
		server := newTestServer(t, search, &mockSettingsService{settings: domain.DefaultSettings()})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "policy"})

		assert.ErrorIs(t, err, domain.ErrNotConfigured)
		assert.Zero(t, search.searchCalls)
	})

	t.Run("site override satisfies missing settings port", func(t *testing.T) {
		search := &mockSearchService{results: sampleResults()}
		server := newTestServer(t, search, nil, WithSiteOverride("https://contoso.sharepoint.com"))

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "policy"})

		require.NoError(t, err)
		assert.Equal(t, 3, output.Count)
	})

	t.Run("settings error is returned", func(t *testing.T) {
		search := &mockSearchService{}
		server := newTestServer(t, search, &mockSettingsService{err: errors.New("bad toml")})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "policy"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad toml")
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		search := &mockSearchService{err: &domain.SearchAPIError{Category: domain.CategoryDocument, StatusCode: 403}}
		server := newTestServer(t, search, &mockSettingsService{settings: configuredSettings()})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "policy"})

		require.Error(t, err)
		var apiErr *domain.SearchAPIError
		assert.ErrorAs(t, err, &apiErr)
	})

	t.Run("partial results report degraded categories", func(t *testing.T) {
		settings := configuredSettings()
		settings.Search.PartialResults = true
		search := &mockSearchService{
			results:  sampleResults()[1:],
			degraded: []domain.Category{domain.CategoryListItem},
		}
		server := newTestServer(t, search, &mockSettingsService{settings: settings})

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "policy"})

		require.NoError(t, err)
		assert.Equal(t, 1, search.searchCalls)
		assert.True(t, search.lastPolicy.PartialResults)
		assert.Equal(t, []string{"ListItem"}, output.Degraded)
		assert.Equal(t, 2, output.Count)
	})

	t.Run("query below minimum length is rejected", func(t *testing.T) {
		search := &mockSearchService{results: sampleResults()}
		server := newTestServer(t, search, &mockSettingsService{settings: configuredSettings()})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: " a "})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.ErrorIs(t, err, domain.ErrQueryTooShort)
		assert.Zero(t, search.searchCalls)
	})

	t.Run("minimum length comes from settings", func(t *testing.T) {
		settings := configuredSettings()
		settings.Search.MinQueryLength = 4
		search := &mockSearchService{results: sampleResults()}
		server := newTestServer(t, search, &mockSettingsService{settings: settings})

		_, _, err := server.handleSearch(ctx, nil, SearchInput{Query: "hr q"})
		require.NoError(t, err)
		assert.Equal(t, domain.SearchPolicy{MinQueryLength: 4}, search.lastPolicy)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "hrq"})
		assert.ErrorIs(t, err, domain.ErrQueryTooShort)
		assert.Equal(t, 1, search.searchCalls)
	})

	t.Run("zero timeout leaves context unbounded", func(t *testing.T) {
		settings := configuredSettings()
		settings.Search.Timeout = 0
		search := &mockSearchService{results: sampleResults()}
		server := newTestServer(t, search, &mockSettingsService{settings: settings})

		ctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "policy"})

		require.NoError(t, err)
		assert.Equal(t, 3, output.Count)
	})
}
