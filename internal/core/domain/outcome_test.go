package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchOutcome_AllSucceeded(t *testing.T) {
	o := SearchOutcome{Outcomes: []CategoryOutcome{
		{Category: CategoryListItem, Results: []SearchResult{{ID: "l1"}}},
		{Category: CategoryDocument, Results: []SearchResult{{ID: "d1"}, {ID: "d2"}}},
	}}

	merged := o.Merged()

	assert.Equal(t, []string{"l1", "d1", "d2"}, ids(merged))
	assert.Empty(t, o.Failed())
	assert.False(t, o.AllFailed())
	assert.NoError(t, o.FirstErr())
}

func TestSearchOutcome_OneFailed(t *testing.T) {
	boom := errors.New("boom")
	o := SearchOutcome{Outcomes: []CategoryOutcome{
		{Category: CategoryListItem, Err: boom},
		{Category: CategoryDocument, Results: []SearchResult{{ID: "d1"}}},
	}}

	assert.Equal(t, []string{"d1"}, ids(o.Merged()))
	assert.Equal(t, []Category{CategoryListItem}, o.Failed())
	assert.False(t, o.AllFailed())
	assert.ErrorIs(t, o.FirstErr(), boom)
}

func TestSearchOutcome_AllFailed(t *testing.T) {
	o := SearchOutcome{Outcomes: []CategoryOutcome{
		{Category: CategoryListItem, Err: errors.New("a")},
		{Category: CategoryDocument, Err: errors.New("b")},
	}}

	assert.True(t, o.AllFailed())
	assert.Empty(t, o.Merged())
	assert.Len(t, o.Failed(), 2)
}

func TestSearchOutcome_Empty(t *testing.T) {
	assert.False(t, SearchOutcome{}.AllFailed())
}

func ids(results []SearchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.ID)
	}
	return out
}
