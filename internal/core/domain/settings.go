package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// Default values for search behaviour.
const (
	// DefaultDebounce is the quiet period before a typed query is dispatched.
	DefaultDebounce = 400 * time.Millisecond

	// DefaultMinQueryLength is the shortest trimmed query that is searched.
	DefaultMinQueryLength = 2

	// DefaultRowLimit caps the rows returned per category.
	DefaultRowLimit = 20

	// DefaultDateLayout renders modified dates as a short numeric date.
	DefaultDateLayout = "1/2/2006"

	// DefaultPlaceholder is shown in the empty search box.
	DefaultPlaceholder = "Search list items and documents..."

	// DefaultTitle leaves the heading above the search box hidden.
	DefaultTitle = ""

	// DefaultRequestTimeout bounds a single search request.
	DefaultRequestTimeout = 30 * time.Second
)

// SiteSettings identifies the content repository.
type SiteSettings struct {
	// URL is the absolute site address, e.g. https://contoso.sharepoint.com/sites/hr.
	URL string
}

// AuthSettings holds credentials for the search endpoint.
type AuthSettings struct {
	// Token is a bearer access token. Empty means unauthenticated.
	Token string
}

// SearchSettings tunes query dispatch.
type SearchSettings struct {
	Debounce       time.Duration
	MinQueryLength int
	RowLimit       int
	PartialResults bool
	DateLayout     string
	Timeout        time.Duration
}

// UISettings holds pass-through presentation options.
type UISettings struct {
	Title       string
	Placeholder string
}

// Settings is the resolved application configuration.
type Settings struct {
	Site   SiteSettings
	Auth   AuthSettings
	Search SearchSettings
	UI     UISettings
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	return Settings{
		Search: SearchSettings{
			Debounce:       DefaultDebounce,
			MinQueryLength: DefaultMinQueryLength,
			RowLimit:       DefaultRowLimit,
			DateLayout:     DefaultDateLayout,
			Timeout:        DefaultRequestTimeout,
		},
		UI: UISettings{
			Title:       DefaultTitle,
			Placeholder: DefaultPlaceholder,
		},
	}
}

// IsConfigured returns true if a site URL is set.
func (s Settings) IsConfigured() bool {
	return strings.TrimSpace(s.Site.URL) != ""
}

// Validate checks the settings for values that would break a search.
func (s Settings) Validate() error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}
	u, err := url.Parse(s.Site.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: site URL %q must be an absolute http(s) URL", ErrInvalidInput, s.Site.URL)
	}
	if s.Search.Debounce < 0 {
		return fmt.Errorf("%w: debounce must not be negative", ErrInvalidInput)
	}
	if s.Search.MinQueryLength < 1 {
		return fmt.Errorf("%w: minimum query length must be at least 1", ErrInvalidInput)
	}
	if s.Search.RowLimit < 1 || s.Search.RowLimit > 500 {
		return fmt.Errorf("%w: row limit must be between 1 and 500", ErrInvalidInput)
	}
	return nil
}
