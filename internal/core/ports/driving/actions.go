package driving

import (
	"context"

	"github.com/custodia-labs/spsearch/internal/core/domain"
)

// ResultActionService provides actions on search results for external actors.
// This is used by TUI and CLI adapters.
type ResultActionService interface {
	// OpenResult opens the result's URL in the default application.
	OpenResult(ctx context.Context, result *domain.SearchResult) error
}
