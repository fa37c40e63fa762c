// Package cli provides the cobra command tree for spsearch.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/spsearch/internal/core/domain"
	"github.com/custodia-labs/spsearch/internal/core/ports/driving"
	"github.com/custodia-labs/spsearch/internal/logger"
)

// version is set at build time.
var version = "dev"

// Root flags.
var (
	verbose   bool
	siteURL   string
	configDir string
)

// Services bundles the core services the commands drive.
type Services struct {
	Search   driving.SearchService
	Settings driving.SettingsService
	Actions  driving.ResultActionService

	// NewController creates an interactive controller tuned by settings.
	NewController func(settings domain.Settings) driving.SearchController

	// WatchConfig reloads configuration when the file changes and calls
	// onReload after each attempt. Optional.
	WatchConfig func(ctx context.Context, onReload func(error)) (stop func(), err error)
}

// BootstrapOptions carries the root flags into a Bootstrap.
type BootstrapOptions struct {
	ConfigDir string
	SiteURL   string
}

// Bootstrap builds Services once the root flags are parsed.
type Bootstrap func(opts BootstrapOptions) (*Services, error)

var bootstrap Bootstrap

// Services in use by the commands.
var (
	searchService   driving.SearchService
	settingsService driving.SettingsService
	actionService   driving.ResultActionService
	newController   func(domain.Settings) driving.SearchController
	watchConfig     func(context.Context, func(error)) (func(), error)
)

// skipBootstrap marks commands that never touch configuration.
const skipBootstrap = "skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "spsearch",
	Short: "Search SharePoint list items and documents",
	Long: `spsearch searches a SharePoint site for list items and documents.

Both categories are queried in parallel through the site's search REST API
and merged, list items first. Use 'spsearch tui' for the interactive
search-as-you-type screen or 'spsearch search <query>' for one-off queries.

Configure the site once:
  spsearch config set site.url https://contoso.sharepoint.com/sites/finance
  spsearch auth login`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable diagnostic logging to stderr")
	rootCmd.PersistentFlags().StringVar(&siteURL, "site", "", "site URL, overrides site.url from the config file")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.spsearch)")
}

// SetBootstrap registers the function that builds Services after flag parsing.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	searchService = s.Search
	settingsService = s.Settings
	actionService = s.Actions
	newController = s.NewController
	watchConfig = s.WatchConfig
}

// Execute runs the root command.
func Execute(v string) error {
	return ExecuteContext(context.Background(), v)
}

// ExecuteContext runs the root command with ctx; cancelling ctx stops
// long-running commands such as tui and mcp serve.
func ExecuteContext(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if _, ok := cmd.Annotations[skipBootstrap]; ok || bootstrap == nil {
		return nil
	}

	s, err := bootstrap(BootstrapOptions{ConfigDir: configDir, SiteURL: siteURL})
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(s)
	return nil
}

// requireSettings returns the settings service or an error for the command.
func requireSettings() (driving.SettingsService, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	return settingsService, nil
}

// resolveSettings reads settings and applies the --site override.
func resolveSettings() (domain.Settings, error) {
	svc, err := requireSettings()
	if err != nil {
		return domain.Settings{}, err
	}
	s, err := svc.Get()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("reading settings: %w", err)
	}
	if siteURL != "" {
		s.Site.URL = siteURL
	}
	return s, nil
}

// checkConfigured explains how to fix a missing or invalid site.
func checkConfigured(s domain.Settings) error {
	err := s.Validate()
	if errors.Is(err, domain.ErrNotConfigured) {
		return fmt.Errorf("%w: run 'spsearch config set site.url <url>' or pass --site", err)
	}
	return err
}
