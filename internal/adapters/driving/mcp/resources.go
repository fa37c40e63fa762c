package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for spsearch resources.
const uriScheme = "spsearch://"

// settingsURI names the resolved configuration resource.
const settingsURI = uriScheme + "settings"

// settingsView is the public shape of the configuration. The token itself is
// never exposed.
type settingsView struct {
	SiteURL        string `json:"siteUrl"`
	Authenticated  bool   `json:"authenticated"`
	DebounceMillis int64  `json:"debounceMs"`
	MinQueryLength int    `json:"minQueryLength"`
	RowLimit       int    `json:"rowLimit"`
	PartialResults bool   `json:"partialResults"`
	DateLayout     string `json:"dateLayout"`
	TimeoutSeconds int64  `json:"timeoutSeconds"`
	Title          string `json:"title"`
	Placeholder    string `json:"placeholder"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         settingsURI,
		Name:        "settings",
		Description: "Resolved search configuration: site, tuning and presentation",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

// handleSettingsResource returns the resolved settings without credentials.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings, err := s.settings()
	if err != nil {
		return nil, err
	}

	view := settingsView{
		SiteURL:        settings.Site.URL,
		Authenticated:  settings.Auth.Token != "",
		DebounceMillis: settings.Search.Debounce.Milliseconds(),
		MinQueryLength: settings.Search.MinQueryLength,
		RowLimit:       settings.Search.RowLimit,
		PartialResults: settings.Search.PartialResults,
		DateLayout:     settings.Search.DateLayout,
		TimeoutSeconds: int64(settings.Search.Timeout.Seconds()),
		Title:          settings.UI.Title,
		Placeholder:    settings.UI.Placeholder,
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
