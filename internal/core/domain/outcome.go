package domain

// CategoryOutcome is the result of searching one category.
type CategoryOutcome struct {
	Category Category
	Results  []SearchResult
	Err      error
}

// OK returns true if the category search succeeded.
func (o CategoryOutcome) OK() bool {
	return o.Err == nil
}

// SearchOutcome holds the per-category outcomes of a combined search,
// in merge order (list items first).
type SearchOutcome struct {
	Outcomes []CategoryOutcome
}

// Merged concatenates the results of every successful category in order.
func (o SearchOutcome) Merged() []SearchResult {
	n := 0
	for _, c := range o.Outcomes {
		n += len(c.Results)
	}
	merged := make([]SearchResult, 0, n)
	for _, c := range o.Outcomes {
		if c.OK() {
			merged = append(merged, c.Results...)
		}
	}
	return merged
}

// Failed returns the categories whose search failed.
func (o SearchOutcome) Failed() []Category {
	var failed []Category
	for _, c := range o.Outcomes {
		if !c.OK() {
			failed = append(failed, c.Category)
		}
	}
	return failed
}

// AllFailed returns true if there is at least one outcome and none succeeded.
func (o SearchOutcome) AllFailed() bool {
	if len(o.Outcomes) == 0 {
		return false
	}
	for _, c := range o.Outcomes {
		if c.OK() {
			return false
		}
	}
	return true
}

// FirstErr returns the first error in merge order, or nil.
func (o SearchOutcome) FirstErr() error {
	for _, c := range o.Outcomes {
		if c.Err != nil {
			return c.Err
		}
	}
	return nil
}
