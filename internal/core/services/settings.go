package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/spsearch/internal/core/domain"
	"github.com/custodia-labs/spsearch/internal/core/ports/driven"
	"github.com/custodia-labs/spsearch/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeySiteURL        = "site.url"
	KeyAuthToken      = "auth.token"
	KeyDebounceMS     = "search.debounce_ms"
	KeyMinQueryLength = "search.min_query_length"
	KeyRowLimit       = "search.row_limit"
	KeyPartialResults = "search.partial_results"
	KeyDateLayout     = "search.date_layout"
	KeyTimeoutSeconds = "search.timeout_seconds"
	KeyUITitle        = "ui.title"
	KeyUIPlaceholder  = "ui.placeholder"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindBool
)

var settingKinds = map[string]valueKind{
	KeySiteURL:        kindString,
	KeyAuthToken:      kindString,
	KeyDebounceMS:     kindInt,
	KeyMinQueryLength: kindInt,
	KeyRowLimit:       kindInt,
	KeyPartialResults: kindBool,
	KeyDateLayout:     kindString,
	KeyTimeoutSeconds: kindInt,
	KeyUITitle:        kindString,
	KeyUIPlaceholder:  kindString,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get resolves current settings, applying defaults for unset keys.
func (s *SettingsService) Get() (domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := domain.Settings{
		Site: domain.SiteSettings{
			URL: strings.TrimRight(strings.TrimSpace(s.configStore.GetString(KeySiteURL)), "/"),
		},
		Auth: domain.AuthSettings{
			Token: s.configStore.GetString(KeyAuthToken),
		},
		Search: domain.SearchSettings{
			Debounce:       s.getMillis(KeyDebounceMS, defaults.Search.Debounce),
			MinQueryLength: s.getInt(KeyMinQueryLength, defaults.Search.MinQueryLength),
			RowLimit:       s.getInt(KeyRowLimit, defaults.Search.RowLimit),
			PartialResults: s.getBool(KeyPartialResults, defaults.Search.PartialResults),
			DateLayout:     s.getString(KeyDateLayout, defaults.Search.DateLayout),
			Timeout:        s.getSeconds(KeyTimeoutSeconds, defaults.Search.Timeout),
		},
		UI: domain.UISettings{
			Title:       s.getString(KeyUITitle, defaults.UI.Title),
			Placeholder: s.getString(KeyUIPlaceholder, defaults.UI.Placeholder),
		},
	}

	return settings, nil
}

// Set parses value according to the key's type and stores it.
// An empty value removes the key so the default applies again.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return s.configStore.Delete(key)
	}

	var stored any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		if n < 0 {
			return fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, key)
		}
		stored = int64(n)
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		stored = b
	default:
		stored = value
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns every recognised setting key in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks if current settings are usable for a search.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// Reload re-reads the backing store.
func (s *SettingsService) Reload() error {
	return s.configStore.Load()
}

// ConfigPath returns the backing file path, if any.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Millisecond
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Second
}
