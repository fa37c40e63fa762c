package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui"
	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/spsearch/internal/core/ports/driving"
	"github.com/custodia-labs/spsearch/internal/logger"
)

// tuiLogFile receives diagnostic logs while the alternate screen is active.
const tuiLogFile = "spsearch-tui.log"

// programRunner runs a bubbletea program; replaced in tests.
var programRunner = func(p *tea.Program) error {
	_, err := p.Run()
	return err
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive search screen.

Results update as you type: a search runs once the query has at least the
minimum length and you pause typing. The configuration file is watched and
reloaded while the screen is open.

Controls:
  (type)     Search as you type
  Enter      Search now
  Esc        Clear the query and results
  Tab        Next category tab (Shift+Tab for previous)
  ↑/↓        Move through results
  Ctrl+O     Open the selected result in the browser
  Ctrl+C     Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("tui panic: %v", r)
		}
	}()

	if newController == nil {
		return errors.New("search controller not configured")
	}
	settings, err := resolveSettings()
	if err != nil {
		return err
	}
	if err := checkConfigured(settings); err != nil {
		return err
	}

	restoreLog, err := redirectLogs()
	if err != nil {
		return err
	}
	defer restoreLog()

	controller := newController(settings)
	defer controller.Close()

	app, err := tui.NewApp(&tui.Ports{
		Controller:   controller,
		ResultAction: actionService,
		Settings:     settingsService,
	})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if watchConfig != nil {
		stop, werr := watchConfig(cmd.Context(), onConfigReload(controller, p.Send))
		if werr != nil {
			logger.Warn("config watch unavailable: %v", werr)
		} else {
			defer stop()
		}
	}

	if err := programRunner(p); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// onConfigReload re-reads settings after the config file changed, retunes
// the controller and forwards the outcome to the screen.
func onConfigReload(controller driving.SearchController, send func(tea.Msg)) func(error) {
	return func(reloadErr error) {
		msg := messages.SettingsReloaded{Err: reloadErr}
		if reloadErr == nil {
			msg.Settings, msg.Err = resolveSettings()
		}
		if msg.Err == nil {
			controller.Reconfigure(msg.Settings)
		} else {
			logger.Warn("config reload failed: %v", msg.Err)
		}
		send(msg)
	}
}

// redirectLogs keeps log lines off the alternate screen: to a file in the
// working directory when verbose, discarded otherwise.
func redirectLogs() (restore func(), err error) {
	prev := logger.Output()
	if !verbose {
		logger.SetOutput(nil)
		return func() { logger.SetOutput(prev) }, nil
	}

	f, err := tea.LogToFile(tuiLogFile, "spsearch")
	if err != nil {
		return nil, fmt.Errorf("opening TUI log: %w", err)
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(prev)
		_ = f.Close()
	}, nil
}
