// Package tabs renders the category filter bar.
package tabs

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/spsearch/internal/core/domain"
)

// Bar renders one tab per domain.Tab with its result count.
type Bar struct {
	styles *styles.Styles
}

// NewBar creates a tab bar.
func NewBar(s *styles.Styles) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{styles: s}
}

// View renders the tabs. Categories listed in degraded are flagged.
func (b *Bar) View(active domain.Tab, counts domain.TabCounts, degraded []domain.Category) string {
	cells := make([]string, 0, len(domain.Tabs()))
	for _, tab := range domain.Tabs() {
		label := fmt.Sprintf("%s (%d)", tab.Label(), counts.For(tab))
		if category, ok := tab.Category(); ok && isDegraded(degraded, category) {
			label += " ⚠"
		}
		if tab == active {
			cells = append(cells, b.styles.TabActive.Render(label))
		} else {
			cells = append(cells, b.styles.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func isDegraded(degraded []domain.Category, category domain.Category) bool {
	for _, c := range degraded {
		if c == category {
			return true
		}
	}
	return false
}
