package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/custodia-labs/spsearch/internal/core/domain"
	"github.com/custodia-labs/spsearch/internal/core/ports/driven"
	"github.com/custodia-labs/spsearch/internal/core/ports/driving"
)

// Ensure ResultActionService implements the interface.
var _ driving.ResultActionService = (*ResultActionService)(nil)

// ResultActionService provides actions on search results.
type ResultActionService struct {
	opener driven.URLOpener
}

// NewResultActionService creates a new result action service.
func NewResultActionService(opener driven.URLOpener) *ResultActionService {
	return &ResultActionService{opener: opener}
}

// OpenResult opens the result's URL in the default application.
// Only absolute http(s) links are opened.
func (s *ResultActionService) OpenResult(_ context.Context, result *domain.SearchResult) error {
	if result == nil {
		return fmt.Errorf("%w: result is nil", domain.ErrInvalidInput)
	}
	if result.URL == "" {
		return fmt.Errorf("%w: %q has no link", domain.ErrInvalidInput, result.Title)
	}

	u, err := url.Parse(result.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: cannot open %q", domain.ErrInvalidInput, result.URL)
	}
	if s.opener == nil {
		return fmt.Errorf("no URL opener configured")
	}

	return s.opener.Open(u.String())
}
