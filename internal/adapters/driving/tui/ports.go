// Package tui provides an interactive dataset explorer for hybra.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Dataset loads records from the data directory.
	Dataset driving.DatasetService

	// Filter narrows the loaded records.
	Filter driving.FilterService

	// Describe summarises the loaded records. Optional.
	Describe driving.DescribeService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Dataset == nil {
		return ErrMissingDatasetService
	}
	if p.Filter == nil {
		return ErrMissingFilterService
	}
	return nil
}
