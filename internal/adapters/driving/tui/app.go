package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/spsearch/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	searchView *search.View

	// changes wakes the update loop when the controller reports a new state.
	// Buffered to one: a pending wake-up already covers later changes because
	// the view re-reads the controller snapshot.
	changes chan struct{}

	title  string
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	view := search.NewView(s, km, ports.Controller, ports.ResultAction)

	ui := domain.DefaultSettings().UI
	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			ui = settings.UI
		}
	}
	view.ApplySettings(ui)

	app := &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		searchView: view,
		changes:    make(chan struct{}, 1),
		title:      ui.Title,
	}

	ports.Controller.Subscribe(func(domain.SearchState) {
		select {
		case app.changes <- struct{}{}:
		default:
		}
	})

	return app, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	title := "spsearch"
	if a.title != "" {
		title += " - " + a.title
	}
	return tea.Batch(
		tea.SetWindowTitle(title),
		a.searchView.Init(),
		a.waitForChange(),
	)
}

// waitForChange blocks until the controller reports a change or the
// context ends.
func (a *App) waitForChange() tea.Cmd {
	changes, ctx := a.changes, a.ctx
	return func() tea.Msg {
		select {
		case <-changes:
			return messages.StateChanged{}
		case <-ctx.Done():
			return nil
		}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.searchView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case messages.StateChanged:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, tea.Batch(cmd, a.waitForChange())

	case messages.Quit:
		return a, tea.Quit
	}

	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.searchView.View()
}

// SearchView returns the search screen.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
}
