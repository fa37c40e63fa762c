package sharepoint

import (
	"context"
	"sync"

	"github.com/custodia-labs/spsearch/internal/core/domain"
	"github.com/custodia-labs/spsearch/internal/core/ports/driven"
)

var _ driven.CategorySearcher = (*Reloadable)(nil)

// Reloadable is a CategorySearcher whose Client is rebuilt from current
// settings on Reload. Long-running commands use it so an edited config file
// (new site URL, row limit, date layout) applies without a restart.
type Reloadable struct {
	build func() (*Client, error)

	mu     sync.RWMutex
	client *Client
	err    error
}

// NewReloadable builds the first client immediately. A build error is kept
// and returned by searches until a later Reload succeeds.
func NewReloadable(build func() (*Client, error)) *Reloadable {
	r := &Reloadable{build: build}
	_ = r.Reload()
	return r
}

// Reload rebuilds the client. On failure a previously working client stays
// in place and the error is returned.
func (r *Reloadable) Reload() error {
	c, err := r.build()

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		if r.client == nil {
			r.err = err
		}
		return err
	}
	r.client, r.err = c, nil
	return nil
}

// Current returns the active client, or the build error if none exists.
func (r *Reloadable) Current() (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.client, r.err
}

// SearchListItems delegates to the active client.
func (r *Reloadable) SearchListItems(ctx context.Context, query string) ([]domain.SearchResult, error) {
	c, err := r.Current()
	if err != nil {
		return nil, err
	}
	return c.SearchListItems(ctx, query)
}

// SearchDocuments delegates to the active client.
func (r *Reloadable) SearchDocuments(ctx context.Context, query string) ([]domain.SearchResult, error) {
	c, err := r.Current()
	if err != nil {
		return nil, err
	}
	return c.SearchDocuments(ctx, query)
}
