// Package search provides the search screen for the TUI.
package search

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/components/tabs"
	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/spsearch/internal/core/domain"
	"github.com/custodia-labs/spsearch/internal/core/ports/driving"
)

// Screen texts.
const (
	HintIdle      = "Start typing to search across list items and documents"
	HintSearching = "Searching SharePoint..."
	HintNoResults = "Try different keywords or broaden your search"
)

// reservedRows covers the title, search box, tabs and status bar.
const reservedRows = 10

// View is the single search screen: title, search box, tabs, results and
// status bar. All search state lives in the controller; the view keeps the
// last snapshot it rendered.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	tabs      *tabs.Bar
	statusbar *status.Bar
	spinner   spinner.Model

	controller driving.SearchController
	actions    driving.ResultActionService
	ctx        context.Context

	title    string
	state    domain.SearchState
	listKey  string
	spinning bool

	width  int
	height int
	ready  bool
}

// NewView creates a search view bound to controller.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	controller driving.SearchController,
	actions driving.ResultActionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Title

	v := &View{
		styles:     s,
		keymap:     km,
		input:      input.NewSearchInput(s, ""),
		list:       list.NewResultList(s),
		tabs:       tabs.NewBar(s),
		statusbar:  status.NewBar(s, km),
		spinner:    sp,
		controller: controller,
		actions:    actions,
		ctx:        context.Background(),
		title:      domain.DefaultTitle,
		state:      domain.NewSearchState(),
		width:      80,
		height:     24,
	}
	if controller != nil {
		v.state = controller.State()
	}
	return v
}

// WithContext sets the context used for result actions.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// ApplySettings applies the presentation settings.
func (v *View) ApplySettings(ui domain.UISettings) {
	v.title = ui.Title
	v.input.SetPlaceholder(ui.Placeholder)
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.StateChanged:
		return v, v.sync()

	case messages.ResultOpened:
		if msg.Err != nil {
			v.statusbar.SetError("Open failed: " + msg.Err.Error())
		} else {
			v.statusbar.SetMessage("Opened " + msg.Result.Title)
		}
		return v, nil

	case messages.SettingsReloaded:
		if msg.Err != nil {
			v.statusbar.SetError("Config reload failed: " + msg.Err.Error())
			return v, nil
		}
		v.ApplySettings(msg.Settings.UI)
		v.statusbar.SetMessage("Configuration reloaded")
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetError(msg.Err.Error())
		return v, nil

	case spinner.TickMsg:
		if !v.spinning {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg routes keys: bindings first, everything else to the search box.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Search):
		v.statusbar.Clear()
		v.controller.Submit()
		return v, v.sync()

	case key.Matches(msg, v.keymap.Clear):
		v.statusbar.Clear()
		v.input.Reset()
		v.controller.Clear()
		return v, v.sync()

	case key.Matches(msg, v.keymap.NextTab):
		v.controller.SelectTab(v.state.ActiveTab.Next())
		return v, v.sync()

	case key.Matches(msg, v.keymap.PrevTab):
		v.controller.SelectTab(v.state.ActiveTab.Prev())
		return v, v.sync()

	case key.Matches(msg, v.keymap.Up):
		v.list.MoveUp()
		return v, nil

	case key.Matches(msg, v.keymap.Down):
		v.list.MoveDown()
		return v, nil

	case key.Matches(msg, v.keymap.Open):
		return v, v.openSelected()
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if after := v.input.Value(); after != before {
		v.statusbar.Clear()
		v.controller.SetQuery(after)
		return v, tea.Batch(cmd, v.sync())
	}
	return v, cmd
}

// openSelected opens the highlighted result off the update loop.
func (v *View) openSelected() tea.Cmd {
	selected := v.list.SelectedResult()
	if selected == nil {
		return nil
	}
	if v.actions == nil {
		v.statusbar.SetError("Open not available")
		return nil
	}
	result := *selected
	actions, ctx := v.actions, v.ctx
	return func() tea.Msg {
		return messages.ResultOpened{Result: result, Err: actions.OpenResult(ctx, &result)}
	}
}

// sync pulls the controller snapshot into the components. It returns a
// spinner tick when a search has just started.
func (v *View) sync() tea.Cmd {
	v.state = v.controller.State()
	v.input.SetLoading(v.state.IsLoading)
	v.statusbar.SetState(v.state)

	// Keep the selection while the same result set is shown under the same tab.
	k := fmt.Sprintf("%d/%s/%d/%t", v.state.Seq, v.state.ActiveTab, len(v.state.Results), v.state.IsLoading)
	if k != v.listKey {
		v.listKey = k
		v.list.SetResults(v.state.Filtered())
	}

	if v.state.IsLoading && !v.spinning {
		v.spinning = true
		return v.spinner.Tick
	}
	if !v.state.IsLoading {
		v.spinning = false
	}
	return nil
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	if v.title != "" {
		sections = append(sections, v.styles.Title.Render(v.title), "")
	}
	sections = append(sections, v.input.View(), "")

	if v.state.HasSearched && len(v.state.Results) > 0 {
		tabBar := v.tabs.View(v.state.ActiveTab, v.state.Counts(), v.state.Degraded)
		sections = append(sections, tabBar, "")
	}

	sections = append(sections, v.renderBody(), "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderBody renders whichever of loading, error, idle, empty or results applies.
func (v *View) renderBody() string {
	switch v.state.Phase() {
	case domain.PhaseSearching:
		return v.spinner.View() + " " + v.styles.Muted.Render(HintSearching)
	case domain.PhaseError:
		return v.styles.Error.Render("⚠️  " + v.state.ErrorMessage)
	case domain.PhaseIdle:
		return v.styles.Muted.Render(HintIdle)
	}

	if v.list.IsEmpty() {
		return lipgloss.JoinVertical(lipgloss.Left,
			v.styles.Normal.Render(fmt.Sprintf("🔍 No results found for %q", v.state.Query)),
			v.styles.Muted.Render(HintNoResults),
		)
	}
	return v.list.View()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-reservedRows)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Title returns the heading text.
func (v *View) Title() string {
	return v.title
}

// Query returns the text in the search box.
func (v *View) Query() string {
	return v.input.Value()
}

// State returns the last rendered controller snapshot.
func (v *View) State() domain.SearchState {
	return v.state
}

// Visible returns the results shown under the active tab.
func (v *View) Visible() []domain.SearchResult {
	return v.list.Results()
}

// SelectedResult returns the highlighted result, if any.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// StatusMessage returns the transient status bar message.
func (v *View) StatusMessage() string {
	return v.statusbar.Message()
}
