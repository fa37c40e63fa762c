package driven

import (
	"context"

	"github.com/custodia-labs/spsearch/internal/core/domain"
)

// CategorySearcher queries the remote search endpoint for one content
// category at a time. Backed by the SharePoint search REST API.
type CategorySearcher interface {
	// SearchListItems returns list item hits for query, in endpoint rank order.
	SearchListItems(ctx context.Context, query string) ([]domain.SearchResult, error)

	// SearchDocuments returns document hits for query, in endpoint rank order.
	SearchDocuments(ctx context.Context, query string) ([]domain.SearchResult, error)
}
