package services

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driving"
	"github.com/custodia-labs/hybra-cli/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// noticeExportFailed heads the list of supported formats printed after a failed export.
const noticeExportFailed = "File export failed. Supported file types:"

// ExportService dispatches records to the exporter registered for a
// file extension.
type ExportService struct {
	registry driven.ExporterRegistry
}

// NewExportService creates an export service over registry.
func NewExportService(registry driven.ExporterRegistry) *ExportService {
	return &ExportService{registry: registry}
}

// Export writes records to path using the exporter chosen by the text
// after the last dot. A failure never escapes: it is printed together
// with the supported formats and carried in the result.
func (s *ExportService) Export(ctx context.Context, records []domain.Record, path string) domain.ExportResult {
	result := domain.ExportResult{
		Path:      path,
		Format:    FormatOf(path),
		Supported: s.Formats(),
	}

	exporter, err := s.registry.Get(result.Format)
	if err == nil {
		logger.Debug("exporting %d records to %s as %s", len(records), path, result.Format)
		err = exporter.Export(ctx, records, path)
	}

	if err != nil {
		result.Err = err
		logger.Notice("%v", err)
		logger.Notice(noticeExportFailed)
		for _, f := range result.Supported {
			logger.Notice(".%s", f)
		}
		return result
	}

	result.Records = len(records)
	return result
}

// Formats returns the registered file extensions, sorted.
func (s *ExportService) Formats() []string {
	return s.registry.Formats()
}

// FormatOf returns the lowercased text after the last dot of path's
// base name, or "" when there is none.
func FormatOf(path string) string {
	base := filepath.Base(path)
	i := strings.LastIndex(base, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}
