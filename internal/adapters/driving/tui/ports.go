// Package tui provides an interactive terminal user interface for spsearch.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/spsearch/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI uses.
type Ports struct {
	// Controller owns the interactive search state. Required.
	Controller driving.SearchController

	// ResultAction opens result links. Optional.
	ResultAction driving.ResultActionService

	// Settings supplies the title and placeholder. Optional.
	Settings driving.SettingsService
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Controller == nil {
		return ErrMissingController
	}
	return nil
}
