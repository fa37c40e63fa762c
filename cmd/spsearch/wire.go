package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/custodia-labs/spsearch/internal/adapters/driven/auth"
	"github.com/custodia-labs/spsearch/internal/adapters/driven/browser"
	"github.com/custodia-labs/spsearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/spsearch/internal/adapters/driven/sharepoint"
	"github.com/custodia-labs/spsearch/internal/adapters/driving/cli"
	"github.com/custodia-labs/spsearch/internal/core/domain"
	"github.com/custodia-labs/spsearch/internal/core/ports/driven"
	"github.com/custodia-labs/spsearch/internal/core/ports/driving"
	"github.com/custodia-labs/spsearch/internal/core/services"
	"github.com/custodia-labs/spsearch/internal/logger"
)

// bootstrap builds the services once the root flags are known.
func bootstrap(opts cli.BootstrapOptions) (*cli.Services, error) {
	store, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsSvc := services.NewSettingsService(store)

	// The client is built lazily from current settings so commands that only
	// edit configuration work before a site is set.
	searcher := sharepoint.NewReloadable(func() (*sharepoint.Client, error) {
		return buildClient(store, settingsSvc, opts.SiteURL)
	})
	searchSvc := services.NewSearchService(searcher)

	return &cli.Services{
		Search:   searchSvc,
		Settings: settingsSvc,
		Actions:  services.NewResultActionService(browser.NewOpener()),
		NewController: func(s domain.Settings) driving.SearchController {
			return services.NewController(searchSvc, services.ControllerConfigFromSettings(s))
		},
		WatchConfig: func(ctx context.Context, onReload func(error)) (func(), error) {
			return watchConfig(ctx, store, searcher, onReload)
		},
	}, nil
}

// watchConfig reloads the store on file changes, rebuilds the search client
// and then notifies onReload.
func watchConfig(
	ctx context.Context,
	store *file.ConfigStore,
	searcher *sharepoint.Reloadable,
	onReload func(error),
) (func(), error) {
	w := file.NewWatcher(store, func(err error) {
		if err == nil {
			if rerr := searcher.Reload(); rerr != nil {
				logger.Warn("search client not rebuilt: %v", rerr)
			}
		}
		if onReload != nil {
			onReload(err)
		}
	})
	if err := w.Start(ctx); err != nil {
		return nil, fmt.Errorf("watching config: %w", err)
	}
	return w.Stop, nil
}

// buildClient creates a search client from the current settings.
func buildClient(store driven.ConfigStore, settingsSvc driving.SettingsService, siteOverride string) (*sharepoint.Client, error) {
	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, err
	}
	if siteOverride != "" {
		settings.Site.URL = siteOverride
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("search client for %s (row limit %d)", settings.Site.URL, settings.Search.RowLimit)
	return sharepoint.NewClientFromSettings(settings, newHTTPClient(store, settings))
}

// newHTTPClient picks the token source: the environment first, then the
// config file, else no Authorization header.
func newHTTPClient(store driven.ConfigStore, settings domain.Settings) *http.Client {
	ctx := context.Background()
	if token := os.Getenv(cli.TokenEnv); token != "" {
		logger.Debug("using token from %s", cli.TokenEnv)
		return auth.NewStaticHTTPClient(ctx, token, settings.Search.Timeout)
	}
	if settings.Auth.Token != "" {
		return auth.NewHTTPClient(ctx, auth.NewConfigTokenProvider(store), settings.Search.Timeout)
	}
	logger.Debug("no access token configured; sending unauthenticated requests")
	return auth.NewHTTPClient(ctx, auth.NewNullTokenProvider(), settings.Search.Timeout)
}
