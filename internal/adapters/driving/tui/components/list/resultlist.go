// Package list provides the result list component for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/spsearch/internal/core/domain"
)

// linesPerResult is the rendered height of one row including its gap.
const linesPerResult = 4

// listItemGlyph marks list item rows.
const listItemGlyph = "☰"

var fileGlyphs = map[string]string{
	"DOCX": "📄", "DOC": "📄",
	"XLSX": "📊", "XLS": "📊",
	"PPTX": "📑", "PPT": "📑",
	"PDF": "📕",
	"PNG": "🖼️", "JPG": "🖼️", "JPEG": "🖼️", "GIF": "🖼️",
	"ZIP": "📦",
	"MSG": "✉️",
	"TXT": "📝",
}

// FileGlyph returns the icon for an upper-cased file extension.
func FileGlyph(fileType string) string {
	if g, ok := fileGlyphs[fileType]; ok {
		return g
	}
	return "📁"
}

// Glyph returns the leading icon for a result row.
func Glyph(r *domain.SearchResult) string {
	if r.Category == domain.CategoryListItem {
		return listItemGlyph
	}
	return FileGlyph(r.FileType)
}

// ResultList displays search results in a navigable list.
type ResultList struct {
	results  []domain.SearchResult
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		width:  80,
		height: 12,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles arrow-key navigation.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			r.MoveUp()
		case tea.KeyDown:
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the visible window of results around the selection.
func (r *ResultList) View() string {
	if len(r.results) == 0 {
		return ""
	}

	visible := r.height / linesPerResult
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.results) {
		end = len(r.results)
	}

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, r.renderResult(i, &r.results[i]))
	}
	return strings.Join(rows, "\n\n")
}

// renderResult formats one card: title line, optional description, metadata.
func (r *ResultList) renderResult(index int, result *domain.SearchResult) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	title := indicator + Glyph(result) + " " + truncate(result.Title, r.width-8)
	if index == r.selected {
		title = r.styles.Selected.Render(title)
	} else {
		title = r.styles.Normal.Render(title)
	}

	lines := []string{title}
	if desc := PlainText(result.Description); desc != "" {
		lines = append(lines, r.styles.Muted.Render("    "+truncate(desc, r.width-6)))
	}
	lines = append(lines, "    "+r.renderMeta(result))
	return strings.Join(lines, "\n")
}

func (r *ResultList) renderMeta(result *domain.SearchResult) string {
	parts := make([]string, 0, 5)
	switch result.Category {
	case domain.CategoryListItem:
		parts = append(parts, r.styles.Badge.Render(result.Category.Label()))
	case domain.CategoryDocument:
		if result.FileType != "" {
			parts = append(parts, r.styles.Badge.Render(result.FileType))
		}
	}

	var meta []string
	if result.ContainerName != "" {
		meta = append(meta, "📂 "+result.ContainerName)
	}
	if result.Author != "" {
		meta = append(meta, "👤 "+result.Author)
	}
	if result.Modified != "" {
		meta = append(meta, "🕒 "+result.Modified)
	}
	if result.SizeLabel != "" {
		meta = append(meta, result.SizeLabel)
	}
	if len(meta) > 0 {
		parts = append(parts, r.styles.Muted.Render(strings.Join(meta, "  ")))
	}
	return strings.Join(parts, "  ")
}

func truncate(s string, limit int) string {
	if limit < 10 {
		limit = 10
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// SetResults replaces the list and resets the selection.
func (r *ResultList) SetResults(results []domain.SearchResult) {
	r.results = results
	r.selected = 0
}

// Results returns the current results.
func (r *ResultList) Results() []domain.SearchResult {
	return r.results
}

// Selected returns the index of the selected result.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.results) {
		r.selected = index
	}
}

// SelectedResult returns the currently selected result, or nil if none.
func (r *ResultList) SelectedResult() *domain.SearchResult {
	if r.selected < 0 || r.selected >= len(r.results) {
		return nil
	}
	return &r.results[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.results)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of results.
func (r *ResultList) Count() int {
	return len(r.results)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.results) == 0
}
