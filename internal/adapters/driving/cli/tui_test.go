package cli

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/spsearch/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/spsearch/internal/core/domain"
)

func stubProgramRunner(t *testing.T, err error) *int {
	t.Helper()
	runs := 0
	prev := programRunner
	programRunner = func(*tea.Program) error {
		runs++
		return err
	}
	t.Cleanup(func() { programRunner = prev })
	return &runs
}

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.Contains(t, tuiCmd.Long, "Controls:")
}

func TestTUICmd_RunsProgram(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	runs := stubProgramRunner(t, nil)

	rootCmd.SetArgs([]string{"tui"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, 1, *runs)
	assert.True(t, env.controller.closed)
}

func TestTUICmd_ProgramError(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	stubProgramRunner(t, errors.New("no tty"))

	rootCmd.SetArgs([]string{"tui"})
	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "TUI error: no tty")
}

func TestTUICmd_NotConfigured(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	runs := stubProgramRunner(t, nil)
	env.settings.settings.Site.URL = ""

	rootCmd.SetArgs([]string{"tui"})
	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	assert.Zero(t, *runs)
}

func TestTUICmd_NoController(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	stubProgramRunner(t, nil)
	newController = nil

	rootCmd.SetArgs([]string{"tui"})
	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "search controller not configured")
}

func TestTUICmd_StartsAndStopsWatcher(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	stubProgramRunner(t, nil)

	started, stopped := false, false
	watchConfig = func(context.Context, func(error)) (func(), error) {
		started = true
		return func() { stopped = true }, nil
	}

	rootCmd.SetArgs([]string{"tui"})
	require.NoError(t, rootCmd.Execute())

	assert.True(t, started)
	assert.True(t, stopped)
}

func TestTUICmd_WatcherFailureIsNotFatal(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	runs := stubProgramRunner(t, nil)

	watchConfig = func(context.Context, func(error)) (func(), error) {
		return nil, errors.New("inotify limit")
	}

	rootCmd.SetArgs([]string{"tui"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, 1, *runs)
}

func TestTUICmd_PanicIsRecovered(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	prev := programRunner
	programRunner = func(*tea.Program) error { panic("boom") }
	t.Cleanup(func() { programRunner = prev })

	rootCmd.SetArgs([]string{"tui"})
	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tui panic: boom")
}

func TestOnConfigReload_ReconfiguresController(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	env.settings.settings.Search.MinQueryLength = 4
	env.settings.settings.Search.PartialResults = true

	var sent []tea.Msg
	onConfigReload(env.controller, func(msg tea.Msg) { sent = append(sent, msg) })(nil)

	require.Len(t, env.controller.reconfigured, 1)
	assert.Equal(t, 4, env.controller.reconfigured[0].Search.MinQueryLength)
	assert.True(t, env.controller.reconfigured[0].Search.PartialResults)
	require.Len(t, sent, 1)
	reloaded, ok := sent[0].(messages.SettingsReloaded)
	require.True(t, ok)
	assert.NoError(t, reloaded.Err)
	assert.Equal(t, 4, reloaded.Settings.Search.MinQueryLength)
}

func TestOnConfigReload_FailedReloadKeepsConfiguration(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	var sent []tea.Msg
	onConfigReload(env.controller, func(msg tea.Msg) { sent = append(sent, msg) })(errors.New("bad toml"))

	assert.Empty(t, env.controller.reconfigured)
	require.Len(t, sent, 1)
	assert.EqualError(t, sent[0].(messages.SettingsReloaded).Err, "bad toml")
}

func TestOnConfigReload_SettingsReadError(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	env.settings.getErr = errors.New("permission denied")

	var sent []tea.Msg
	onConfigReload(env.controller, func(msg tea.Msg) { sent = append(sent, msg) })(nil)

	assert.Empty(t, env.controller.reconfigured)
	require.Len(t, sent, 1)
	assert.ErrorContains(t, sent[0].(messages.SettingsReloaded).Err, "permission denied")
}
