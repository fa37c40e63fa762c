// Package mcp provides an MCP (Model Context Protocol) server adapter for spsearch.
// It lets AI assistants run SharePoint searches through the same core services
// as the CLI and TUI.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
