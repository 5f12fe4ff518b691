package driven

import (
	"context"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// Exporter writes records to a file in one format.
// Implementations open, write and close the file within Export.
type Exporter interface {
	// Format returns the file extension handled, without the dot.
	Format() string

	// Export writes records to path.
	Export(ctx context.Context, records []domain.Record, path string) error
}

// ExporterRegistry maps file extensions to exporters.
type ExporterRegistry interface {
	// Register adds an exporter under its Format.
	Register(exporter Exporter)

	// Get returns the exporter for a format.
	// Returns ErrUnsupportedFormat if none is registered.
	Get(format string) (Exporter, error)

	// Formats returns all registered formats, sorted.
	Formats() []string
}
