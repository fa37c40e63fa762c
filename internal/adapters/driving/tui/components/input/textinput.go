// Package input provides the search box component for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/spsearch/internal/core/domain"
)

const (
	charLimit    = 256
	minWidth     = 20
	buttonLabel  = "Search"
	chromeWidth  = 16 // border, padding and button
	defaultWidth = 60
)

// SearchInput wraps a bubbles textinput with a search button.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
	loading   bool
}

// NewSearchInput creates a focused search box with the given placeholder.
func NewSearchInput(s *styles.Styles, placeholder string) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if placeholder == "" {
		placeholder = domain.DefaultPlaceholder
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "🔍 "
	ti.CharLimit = charLimit
	ti.Focus()

	in := &SearchInput{
		textinput: ti,
		styles:    s,
	}
	in.SetWidth(defaultWidth)
	return in
}

// Init starts the cursor blink.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the search box and its button.
func (s *SearchInput) View() string {
	field := s.styles.InputField.Render(s.textinput.View())
	button := s.styles.Button.Render(buttonLabel)
	if !s.CanSubmit() {
		button = s.styles.ButtonDisabled.Render(buttonLabel)
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, field, " ", button)
}

// CanSubmit reports whether the search button is enabled: not loading and a
// non-blank query.
func (s *SearchInput) CanSubmit() bool {
	return !s.loading && strings.TrimSpace(s.textinput.Value()) != ""
}

// SetLoading toggles the disabled state used while a search is in flight.
func (s *SearchInput) SetLoading(loading bool) {
	s.loading = loading
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue sets the input value.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
}

// Placeholder returns the placeholder text.
func (s *SearchInput) Placeholder() string {
	return s.textinput.Placeholder
}

// SetPlaceholder replaces the placeholder text. Blank keeps the default.
func (s *SearchInput) SetPlaceholder(placeholder string) {
	if placeholder == "" {
		placeholder = domain.DefaultPlaceholder
	}
	s.textinput.Placeholder = placeholder
}

// Focus sets focus on the input.
func (s *SearchInput) Focus() tea.Cmd {
	return s.textinput.Focus()
}

// Blur removes focus from the input.
func (s *SearchInput) Blur() {
	s.textinput.Blur()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the total width of the box and button.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	inputWidth := width - chromeWidth
	if inputWidth < minWidth {
		inputWidth = minWidth
	}
	s.textinput.Width = inputWidth
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}

// Reset clears the input.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
}
