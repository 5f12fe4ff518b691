package driving

import "github.com/custodia-labs/hybra-cli/internal/core/domain"

// DescribeService summarises datasets.
type DescribeService interface {
	// Describe returns post, author and time span figures.
	Describe(records []domain.Record) domain.DatasetSummary

	// AuthorCounts counts records per creator, largest first.
	AuthorCounts(records []domain.Record) []domain.Count

	// DomainCounts counts records per URL domain, largest first.
	DomainCounts(records []domain.Record) []domain.Count
}
