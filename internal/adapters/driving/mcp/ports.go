package mcp

import (
	"github.com/custodia-labs/spsearch/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Search runs the two category queries.
	Search driving.SearchService

	// Settings exposes the resolved configuration. Optional: without it the
	// defaults apply and the site must come from WithSiteOverride.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
