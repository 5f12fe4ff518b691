package driving

import (
	"context"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// AnalysisService runs external statistical scripts over records.
type AnalysisService interface {
	// Run executes script with the records and params, returning its output.
	Run(ctx context.Context, script string, records []domain.Record, params map[string]string) (string, error)
}
