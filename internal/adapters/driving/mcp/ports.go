package mcp

import (
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Dataset loads records from the data directory.
	Dataset driving.DatasetService

	// Filter selects records.
	Filter driving.FilterService

	// Describe summarises records.
	Describe driving.DescribeService

	// Export lists the supported export formats. Optional.
	Export driving.ExportService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Dataset == nil {
		return ErrMissingDatasetService
	}
	if p.Filter == nil {
		return ErrMissingFilterService
	}
	if p.Describe == nil {
		return ErrMissingDescribeService
	}
	return nil
}
