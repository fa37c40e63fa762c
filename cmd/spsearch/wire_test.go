package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/spsearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/spsearch/internal/core/domain"
)

const oneRowBody = `{"PrimaryQueryResult":{"RelevantResults":{"Table":{"Rows":[` +
	`{"Cells":[{"Key":"Title","Value":"Budget report"},{"Key":"Path","Value":"https://x/a.xlsx"},` +
	`{"Key":"FileExtension","Value":"xlsx"}]}]}}}}`

// recordingServer answers every search with one row and records the
// Authorization header of the last request.
func recordingServer(t *testing.T) (*httptest.Server, func() string) {
	t.Helper()
	var mu sync.Mutex
	var lastAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		lastAuth = r.Header.Get("Authorization")
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(oneRowBody))
	}))
	t.Cleanup(srv.Close)
	return srv, func() string {
		mu.Lock()
		defer mu.Unlock()
		return lastAuth
	}
}

func TestBootstrap_UnconfiguredSearchFails(t *testing.T) {
	t.Setenv(cli.TokenEnv, "")
	svcs, err := bootstrap(cli.BootstrapOptions{ConfigDir: t.TempDir()})
	require.NoError(t, err)

	_, err = svcs.Search.SearchAll(context.Background(), "budget")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestBootstrap_SiteOverride(t *testing.T) {
	t.Setenv(cli.TokenEnv, "")
	srv, lastAuth := recordingServer(t)

	svcs, err := bootstrap(cli.BootstrapOptions{ConfigDir: t.TempDir(), SiteURL: srv.URL})
	require.NoError(t, err)

	results, err := svcs.Search.SearchAll(context.Background(), "budget")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, domain.CategoryListItem, results[0].Category)
	assert.Equal(t, domain.CategoryDocument, results[1].Category)
	assert.Empty(t, lastAuth())
}

func TestBootstrap_ConfigToken(t *testing.T) {
	t.Setenv(cli.TokenEnv, "")
	srv, lastAuth := recordingServer(t)
	dir := t.TempDir()

	svcs, err := bootstrap(cli.BootstrapOptions{ConfigDir: dir})
	require.NoError(t, err)
	require.NoError(t, svcs.Settings.Set("site.url", srv.URL))
	require.NoError(t, svcs.Settings.Set("auth.token", "config-token"))

	// A fresh bootstrap sees the saved file.
	svcs, err = bootstrap(cli.BootstrapOptions{ConfigDir: dir})
	require.NoError(t, err)

	_, err = svcs.Search.SearchAll(context.Background(), "budget")
	require.NoError(t, err)
	assert.Equal(t, "Bearer config-token", lastAuth())
}

func TestBootstrap_EnvTokenWins(t *testing.T) {
	t.Setenv(cli.TokenEnv, "env-token")
	srv, lastAuth := recordingServer(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[site]\nurl = \""+srv.URL+"\"\n\n[auth]\ntoken = \"config-token\"\n"), 0600))

	svcs, err := bootstrap(cli.BootstrapOptions{ConfigDir: dir})
	require.NoError(t, err)

	_, err = svcs.Search.SearchAll(context.Background(), "budget")
	require.NoError(t, err)
	assert.Equal(t, "Bearer env-token", lastAuth())
}

func TestBootstrap_NewControllerUsesSettings(t *testing.T) {
	svcs, err := bootstrap(cli.BootstrapOptions{ConfigDir: t.TempDir()})
	require.NoError(t, err)

	c := svcs.NewController(domain.DefaultSettings())
	defer c.Close()
	assert.Equal(t, domain.TabAll, c.State().ActiveTab)
}

func TestBootstrap_WatchConfigRebuildsClient(t *testing.T) {
	t.Setenv(cli.TokenEnv, "")
	srv, _ := recordingServer(t)
	dir := t.TempDir()

	svcs, err := bootstrap(cli.BootstrapOptions{ConfigDir: dir})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan error, 4)
	stop, err := svcs.WatchConfig(ctx, func(err error) { reloaded <- err })
	require.NoError(t, err)
	defer stop()

	_, err = svcs.Search.SearchAll(ctx, "budget")
	require.ErrorIs(t, err, domain.ErrNotConfigured)

	body := "[site]\nurl = \"" + srv.URL + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0600))

	select {
	case err := <-reloaded:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("config reload not observed")
	}

	results, err := svcs.Search.SearchAll(ctx, "budget")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestNewHTTPClient_Timeout(t *testing.T) {
	t.Setenv(cli.TokenEnv, "")
	s := domain.DefaultSettings()
	s.Search.Timeout = 7 * time.Second

	client := newHTTPClient(nil, s)
	assert.Equal(t, 7*time.Second, client.Timeout)
	assert.Nil(t, client.Transport)
}
