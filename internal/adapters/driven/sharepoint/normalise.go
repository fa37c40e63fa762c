package sharepoint

import (
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/spsearch/internal/core/domain"
)

// dateLayouts are the raw Write formats the endpoint is known to return.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006 3:04:05 PM",
	"2006-01-02",
}

// normaliser maps typed rows onto domain.SearchResult.
type normaliser struct {
	dateLayout string
	location   *time.Location
}

func (n normaliser) listItem(row listItemRow) domain.SearchResult {
	title := row.Title
	if title == "" {
		title = domain.UntitledPlaceholder
	}

	return domain.SearchResult{
		ID:            "list-" + row.ListItemID + "-" + row.ListID,
		Title:         title,
		Category:      domain.CategoryListItem,
		URL:           row.Path,
		Description:   row.Description,
		ContainerName: row.SiteTitle,
		Author:        row.Author,
		Modified:      n.formatDate(row.Write),
	}
}

func (n normaliser) document(row documentRow) domain.SearchResult {
	title := row.Title
	if title == "" {
		title = lastPathSegment(row.Path)
	}
	if title == "" {
		title = domain.UntitledPlaceholder
	}

	container := row.SiteName
	if container == "" {
		container = row.ParentLink
	}

	return domain.SearchResult{
		ID:            "doc-" + row.Path,
		Title:         title,
		Category:      domain.CategoryDocument,
		URL:           row.Path,
		FileType:      strings.ToUpper(row.FileExtension),
		ContainerName: container,
		Author:        row.Author,
		Modified:      n.formatDate(row.Write),
		SizeLabel:     domain.FormatSize(parseSize(row.Size)),
	}
}

// formatDate renders raw as a short date. Absent or unparseable values
// render as "".
func (n normaliser) formatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	layout := n.dateLayout
	if layout == "" {
		layout = domain.DefaultDateLayout
	}
	loc := n.location
	if loc == nil {
		loc = time.Local
	}

	for _, l := range dateLayouts {
		if t, err := time.Parse(l, raw); err == nil {
			return t.In(loc).Format(layout)
		}
	}
	return ""
}

// lastPathSegment returns the text after the final slash.
func lastPathSegment(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// parseSize reads a byte count. Missing or non-numeric sizes read as 0.
func parseSize(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int64(f)
	}
	return 0
}
