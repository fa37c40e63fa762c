package sharepoint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/spsearch/internal/core/domain"
	"github.com/custodia-labs/spsearch/internal/core/ports/driven"
	"github.com/custodia-labs/spsearch/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.CategorySearcher = (*Client)(nil)

const (
	// SearchPath is the search endpoint relative to the site URL.
	SearchPath = "/_api/search/query"

	// AcceptHeader requests JSON without OData metadata.
	AcceptHeader = "application/json;odata=nometadata"

	// HeaderRequestID correlates a request with server-side logs.
	HeaderRequestID = "client-request-id"

	// MaxResponseBytes bounds how much of a response body is read.
	MaxResponseBytes = 8 << 20

	listItemFilter = "ContentClass:STS_ListItem"
	documentFilter = "IsDocument:1"
)

// ErrNoSiteURL is returned when a client is built without a site URL.
var ErrNoSiteURL = errors.New("sharepoint: site URL is required")

// Client queries the SharePoint search API.
type Client struct {
	siteURL     string
	httpClient  *http.Client
	rateLimiter *RateLimiter
	rowLimit    int
	norm        normaliser
	requestID   func() string
}

// Option configures a Client.
type Option func(*Client)

// WithRowLimit sets the per-category row cap.
func WithRowLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.rowLimit = n
		}
	}
}

// WithDateLayout sets the time layout used for modified dates.
func WithDateLayout(layout string) Option {
	return func(c *Client) {
		if layout != "" {
			c.norm.dateLayout = layout
		}
	}
}

// WithLocation sets the zone modified dates are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) {
		if loc != nil {
			c.norm.location = loc
		}
	}
}

// WithRateLimiter replaces the default limiter.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) {
		if r != nil {
			c.rateLimiter = r
		}
	}
}

// NewClient creates a search client for siteURL. httpClient must already
// carry authentication; nil uses http.DefaultClient.
func NewClient(siteURL string, httpClient *http.Client, opts ...Option) (*Client, error) {
	siteURL = strings.TrimRight(strings.TrimSpace(siteURL), "/")
	if siteURL == "" {
		return nil, ErrNoSiteURL
	}
	u, err := url.Parse(siteURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("sharepoint: invalid site URL %q", siteURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &Client{
		siteURL:     siteURL,
		httpClient:  httpClient,
		rateLimiter: NewRateLimiter(),
		rowLimit:    domain.DefaultRowLimit,
		norm: normaliser{
			dateLayout: domain.DefaultDateLayout,
			location:   time.Local,
		},
		requestID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewClientFromSettings creates a client configured from settings.
func NewClientFromSettings(settings domain.Settings, httpClient *http.Client, opts ...Option) (*Client, error) {
	base := []Option{
		WithRowLimit(settings.Search.RowLimit),
		WithDateLayout(settings.Search.DateLayout),
	}
	return NewClient(settings.Site.URL, httpClient, append(base, opts...)...)
}

// SiteURL returns the normalised site URL.
func (c *Client) SiteURL() string {
	return c.siteURL
}

// SearchListItems returns list item hits for query.
func (c *Client) SearchListItems(ctx context.Context, query string) ([]domain.SearchResult, error) {
	rows, err := c.query(ctx, domain.CategoryListItem, query, listItemFilter, listItemSelect)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, c.norm.listItem(decodeListItemRow(r)))
	}
	return results, nil
}

// SearchDocuments returns document hits for query.
func (c *Client) SearchDocuments(ctx context.Context, query string) ([]domain.SearchResult, error) {
	rows, err := c.query(ctx, domain.CategoryDocument, query, documentFilter, documentSelect)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, c.norm.document(decodeDocumentRow(r)))
	}
	return results, nil
}

// query issues one search request and returns its raw rows.
func (c *Client) query(
	ctx context.Context,
	category domain.Category,
	query, filter, selectProps string,
) ([]resultRow, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrEmptyQuery
	}

	reqURL := c.buildURL(query+" "+filter, selectProps)

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, &domain.TransportError{Category: category, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, &domain.TransportError{Category: category, Err: err}
	}
	req.Header.Set("Accept", AcceptHeader)
	req.Header.Set("odata-version", "")
	requestID := c.requestID()
	req.Header.Set(HeaderRequestID, requestID)

	logger.Debug("%s query %s (request %s)", category, reqURL, requestID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Category: category, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if backoff := c.rateLimiter.Observe(resp); backoff > 0 {
			logger.Warn("%s search throttled, backing off %s", category, backoff)
		}
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, MaxResponseBytes))
		return nil, &domain.SearchAPIError{Category: category, StatusCode: resp.StatusCode, URL: reqURL}
	}

	var body searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, MaxResponseBytes)).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &domain.TransportError{Category: category, Err: fmt.Errorf("decode response: %w", err)}
	}

	rows := body.rows()
	logger.Debug("%s query returned %d rows in %s", category, len(rows), time.Since(start).Round(time.Millisecond))
	return rows, nil
}

// buildURL assembles the search URL. Text parameters are OData string
// literals: single-quoted, with embedded quotes doubled.
func (c *Client) buildURL(queryText, selectProps string) string {
	var b strings.Builder
	b.WriteString(c.siteURL)
	b.WriteString(SearchPath)
	b.WriteString("?querytext=")
	b.WriteString(odataLiteral(queryText))
	b.WriteString("&selectproperties=")
	b.WriteString(odataLiteral(selectProps))
	b.WriteString("&rowlimit=")
	b.WriteString(strconv.Itoa(c.rowLimit))
	b.WriteString("&trimduplicates=false")
	return b.String()
}

func odataLiteral(s string) string {
	s = strings.ReplaceAll(s, "'", "''")
	return "'" + strings.ReplaceAll(url.QueryEscape(s), "+", "%20") + "'"
}
