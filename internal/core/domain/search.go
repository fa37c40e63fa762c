package domain

// Category discriminates the two kinds of content a search can return.
type Category string

const (
	// CategoryListItem is a structured record stored in a list.
	CategoryListItem Category = "ListItem"

	// CategoryDocument is a file stored in a document library.
	CategoryDocument Category = "Document"
)

// Categories returns the categories in merge order.
func Categories() []Category {
	return []Category{CategoryListItem, CategoryDocument}
}

// IsValid returns true if the category is recognised.
func (c Category) IsValid() bool {
	return c == CategoryListItem || c == CategoryDocument
}

// String returns the string representation.
func (c Category) String() string {
	return string(c)
}

// Label returns the human-readable badge text.
func (c Category) Label() string {
	switch c {
	case CategoryListItem:
		return "List Item"
	case CategoryDocument:
		return "Document"
	default:
		return unknownDescription
	}
}

// SearchResult is a single hit normalised from either source schema.
type SearchResult struct {
	// ID is unique within one result batch.
	// List items: "list-<item id>-<list id>". Documents: "doc-<path>".
	ID string `json:"id"`

	// Title is always non-empty; falls back to a path segment or "Untitled".
	Title string `json:"title"`

	// Category selects which optional fields are meaningful.
	Category Category `json:"category"`

	// URL is the link target. May be empty if the source omits it.
	URL string `json:"url"`

	// Description is the list item description.
	Description string `json:"description,omitempty"`

	// FileType is the upper-cased file extension (documents only).
	FileType string `json:"fileType,omitempty"`

	// ContainerName is the site or list the hit lives in.
	ContainerName string `json:"containerName,omitempty"`

	// Author is the display name of the author.
	Author string `json:"author,omitempty"`

	// Modified is the last-modified date formatted as a short date.
	Modified string `json:"modified,omitempty"`

	// SizeLabel is the human-readable file size (documents only).
	SizeLabel string `json:"size,omitempty"`
}

// UntitledPlaceholder is the title used when a hit carries no usable name.
const UntitledPlaceholder = "Untitled"

// FilterByCategory returns the results belonging to category, preserving order.
func FilterByCategory(results []SearchResult, category Category) []SearchResult {
	filtered := make([]SearchResult, 0, len(results))
	for i := range results {
		if results[i].Category == category {
			filtered = append(filtered, results[i])
		}
	}
	return filtered
}

// CountByCategory counts the results belonging to category.
func CountByCategory(results []SearchResult, category Category) int {
	n := 0
	for i := range results {
		if results[i].Category == category {
			n++
		}
	}
	return n
}
