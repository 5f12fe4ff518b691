package driving

import (
	"context"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// ExportService writes records to files, choosing the format by extension.
type ExportService interface {
	// Export writes records to path. Failures are reported in the
	// result rather than returned.
	Export(ctx context.Context, records []domain.Record, path string) domain.ExportResult

	// Formats returns the supported file extensions, sorted.
	Formats() []string
}
