// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/spsearch/internal/core/domain"
)

// StateChanged is sent when the search controller reports a new state.
// It carries no payload; views read the controller snapshot when rendering.
type StateChanged struct{}

// ResultOpened reports the outcome of opening a result link.
type ResultOpened struct {
	Result domain.SearchResult
	Err    error
}

// SettingsReloaded carries settings re-read after the config file changed.
type SettingsReloaded struct {
	Settings domain.Settings
	Err      error
}

// ErrorOccurred signals that an error happened outside a search.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
