package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/spsearch/internal/core/domain"
	"github.com/custodia-labs/spsearch/internal/logger"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the keywords to search for in list items and documents"`
	Tab   string `json:"tab,omitempty" jsonschema:"restrict returned results to one category: all (default), listItems or documents"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Query    string               `json:"query"`
	Tab      string               `json:"tab"`
	Counts   CountsOutput         `json:"counts"`
	Degraded []string             `json:"degraded,omitempty"`
	Results  []SearchResultOutput `json:"results"`
	Count    int                  `json:"count"`
}

// CountsOutput carries per-tab totals. They always cover both categories.
type CountsOutput struct {
	All       int `json:"all"`
	ListItems int `json:"listItems"`
	Documents int `json:"documents"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	FileType    string `json:"fileType,omitempty"`
	Container   string `json:"container,omitempty"`
	Author      string `json:"author,omitempty"`
	Modified    string `json:"modified,omitempty"`
	Size        string `json:"size,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the configured SharePoint site for list items and documents",
	}, s.handleSearch)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, SearchOutput{}, domain.ErrEmptyQuery
	}

	tab := domain.TabAll
	if input.Tab != "" {
		tab = domain.Tab(input.Tab)
	}
	if !tab.IsValid() {
		return nil, SearchOutput{}, fmt.Errorf("%w: unknown tab %q", domain.ErrInvalidInput, input.Tab)
	}

	settings, err := s.settings()
	if err != nil {
		return nil, SearchOutput{}, err
	}
	if err := settings.Validate(); err != nil {
		return nil, SearchOutput{}, err
	}

	policy := settings.Search.Policy()
	if err := policy.CheckQuery(query); err != nil {
		return nil, SearchOutput{}, err
	}

	if settings.Search.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.Search.Timeout)
		defer cancel()
	}

	report, err := s.ports.Search.Search(ctx, query, policy)
	if err != nil {
		logger.Error("mcp: search %q failed: %v", query, err)
		return nil, SearchOutput{}, err
	}

	state := domain.NewSearchState()
	state.Query = query
	state.ActiveTab = tab
	state.HasSearched = true
	state.Results = report.Results
	state.Degraded = report.Degraded

	return nil, toSearchOutput(state), nil
}

func toSearchOutput(state domain.SearchState) SearchOutput {
	counts := state.Counts()
	filtered := state.Filtered()

	output := SearchOutput{
		Query: state.Query,
		Tab:   string(state.ActiveTab),
		Counts: CountsOutput{
			All:       counts.All,
			ListItems: counts.ListItems,
			Documents: counts.Documents,
		},
		Results: make([]SearchResultOutput, len(filtered)),
		Count:   len(filtered),
	}
	for _, c := range state.Degraded {
		output.Degraded = append(output.Degraded, string(c))
	}

	for i := range filtered {
		r := &filtered[i]
		output.Results[i] = SearchResultOutput{
			ID:          r.ID,
			Title:       r.Title,
			Category:    string(r.Category),
			URL:         r.URL,
			Description: r.Description,
			FileType:    r.FileType,
			Container:   r.ContainerName,
			Author:      r.Author,
			Modified:    r.Modified,
			Size:        r.SizeLabel,
		}
	}
	return output
}
