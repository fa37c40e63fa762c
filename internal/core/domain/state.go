package domain

// Tab is the display filter applied to the current result set.
type Tab string

const (
	// TabAll shows every result.
	TabAll Tab = "all"

	// TabListItems shows list item results only.
	TabListItems Tab = "listItems"

	// TabDocuments shows document results only.
	TabDocuments Tab = "documents"
)

// Tabs returns the tabs in display order.
func Tabs() []Tab {
	return []Tab{TabAll, TabListItems, TabDocuments}
}

// IsValid returns true if the tab is recognised.
func (t Tab) IsValid() bool {
	switch t {
	case TabAll, TabListItems, TabDocuments:
		return true
	default:
		return false
	}
}

// Label returns the tab caption.
func (t Tab) Label() string {
	switch t {
	case TabAll:
		return "All"
	case TabListItems:
		return "List Items"
	case TabDocuments:
		return "Documents"
	default:
		return unknownDescription
	}
}

// Next returns the tab to the right, wrapping around.
func (t Tab) Next() Tab {
	tabs := Tabs()
	for i, tab := range tabs {
		if tab == t {
			return tabs[(i+1)%len(tabs)]
		}
	}
	return TabAll
}

// Prev returns the tab to the left, wrapping around.
func (t Tab) Prev() Tab {
	tabs := Tabs()
	for i, tab := range tabs {
		if tab == t {
			return tabs[(i+len(tabs)-1)%len(tabs)]
		}
	}
	return TabAll
}

// Category returns the category a tab filters on.
// The second value is false for TabAll, which does not filter.
func (t Tab) Category() (Category, bool) {
	switch t {
	case TabListItems:
		return CategoryListItem, true
	case TabDocuments:
		return CategoryDocument, true
	default:
		return "", false
	}
}

// Phase is the coarse state of an interactive search.
type Phase string

const (
	// PhaseIdle is the initial state and the state after a clear.
	PhaseIdle Phase = "idle"

	// PhaseSearching means a search has been dispatched and not yet resolved.
	PhaseSearching Phase = "searching"

	// PhaseResults means the latest search resolved successfully.
	PhaseResults Phase = "results"

	// PhaseError means the latest search failed.
	PhaseError Phase = "error"
)

// SearchFailedMessage is the only failure text shown to users.
const SearchFailedMessage = "Search failed. Please check your permissions and try again."

// SearchState is the interactive search state. It is ephemeral and owned by
// the search controller; callers receive copies.
type SearchState struct {
	// Query is the raw input text.
	Query string

	// Results holds list items before documents.
	Results []SearchResult

	// IsLoading is true while a search is in flight.
	IsLoading bool

	// HasSearched is true once a search has been dispatched since the last reset.
	HasSearched bool

	// ErrorMessage is set only after a failed search.
	ErrorMessage string

	// ActiveTab filters the displayed results. It never changes Results.
	ActiveTab Tab

	// Degraded lists categories that failed while partial results were shown.
	Degraded []Category

	// Seq identifies the most recently dispatched search.
	Seq uint64
}

// NewSearchState returns the initial state.
func NewSearchState() SearchState {
	return SearchState{
		Results:   []SearchResult{},
		ActiveTab: TabAll,
	}
}

// Phase derives the coarse state from the flags.
func (s SearchState) Phase() Phase {
	switch {
	case s.IsLoading:
		return PhaseSearching
	case !s.HasSearched:
		return PhaseIdle
	case s.ErrorMessage != "":
		return PhaseError
	default:
		return PhaseResults
	}
}

// Filtered returns the results visible under the active tab.
func (s SearchState) Filtered() []SearchResult {
	category, ok := s.ActiveTab.Category()
	if !ok {
		return s.Results
	}
	return FilterByCategory(s.Results, category)
}

// Counts returns the tab badge counts, always computed from the full results.
func (s SearchState) Counts() TabCounts {
	return TabCounts{
		All:       len(s.Results),
		ListItems: CountByCategory(s.Results, CategoryListItem),
		Documents: CountByCategory(s.Results, CategoryDocument),
	}
}

// IsDegraded returns true if category failed in the latest partial search.
func (s SearchState) IsDegraded(category Category) bool {
	for _, c := range s.Degraded {
		if c == category {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to hand to observers.
func (s SearchState) Clone() SearchState {
	out := s
	out.Results = append([]SearchResult(nil), s.Results...)
	if out.Results == nil {
		out.Results = []SearchResult{}
	}
	if s.Degraded != nil {
		out.Degraded = append([]Category(nil), s.Degraded...)
	}
	return out
}

// TabCounts holds the per-tab badge counts.
type TabCounts struct {
	All       int
	ListItems int
	Documents int
}

// For returns the count shown on tab.
func (c TabCounts) For(tab Tab) int {
	switch tab {
	case TabListItems:
		return c.ListItems
	case TabDocuments:
		return c.Documents
	default:
		return c.All
	}
}
