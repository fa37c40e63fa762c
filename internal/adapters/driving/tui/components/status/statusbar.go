// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/spsearch/internal/core/domain"
)

// Bar displays search status and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	phase    domain.Phase
	message  string
	isError  bool
	count    int
	degraded []domain.Category
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		phase:  domain.PhaseIdle,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

func (s *Bar) renderLeft() string {
	if s.message != "" {
		if s.isError {
			return s.styles.Error.Render(s.message)
		}
		return s.styles.Normal.Render(s.message)
	}

	switch s.phase {
	case domain.PhaseSearching:
		return s.styles.Muted.Render("Searching...")
	case domain.PhaseError:
		return s.styles.Error.Render("Search failed")
	case domain.PhaseResults:
		text := s.styles.Normal.Render(fmt.Sprintf("%d results", s.count))
		if len(s.degraded) > 0 {
			names := make([]string, len(s.degraded))
			for i, c := range s.degraded {
				names[i] = c.Label()
			}
			text += s.styles.Warning.Render(" (unavailable: " + strings.Join(names, ", ") + ")")
		}
		return text
	default:
		return s.styles.Muted.Render("Ready")
	}
}

func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	if s.phase == domain.PhaseResults && s.count > 0 {
		bindings = s.keymap.ResultsHelp()
	}
	return s.styles.Muted.Render(hints(bindings))
}

func hints(bindings []key.Binding) string {
	out := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, h.Key+": "+h.Desc)
	}
	return strings.Join(out, " | ")
}

// SetState copies the display-relevant parts of a search state.
func (s *Bar) SetState(state domain.SearchState) {
	s.phase = state.Phase()
	s.count = len(state.Results)
	s.degraded = state.Degraded
}

// Phase returns the displayed phase.
func (s *Bar) Phase() domain.Phase {
	return s.phase
}

// SetMessage shows a transient message in place of the phase summary.
func (s *Bar) SetMessage(message string) {
	s.message = message
	s.isError = false
}

// SetError shows a transient error message.
func (s *Bar) SetError(message string) {
	s.message = message
	s.isError = true
}

// Message returns the current transient message.
func (s *Bar) Message() string {
	return s.message
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Clear drops any transient message.
func (s *Bar) Clear() {
	s.message = ""
	s.isError = false
}
