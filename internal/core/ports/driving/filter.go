package driving

import "github.com/custodia-labs/hybra-cli/internal/core/domain"

// FilterService selects records by predicate.
// Every method returns a new slice in input order and never mutates
// the records it is given.
type FilterService interface {
	// FilterText keeps records whose text matches the query terms.
	FilterText(records []domain.Record, query domain.TextQuery) []domain.Record

	// FilterDatetime keeps records published strictly between after and before.
	// Empty or unparseable bounds are ignored.
	FilterDatetime(records []domain.Record, after, before string) []domain.Record

	// FilterAuthor keeps records created by one of the authors.
	FilterAuthor(records []domain.Record, authors []string) []domain.Record

	// FilterDomain keeps records whose URL host is one of the domains.
	FilterDomain(records []domain.Record, domains []string) []domain.Record

	// FilterWhere keeps records for which a boolean expression holds.
	FilterWhere(records []domain.Record, expression string) ([]domain.Record, error)

	// Apply runs every set criterion in turn.
	Apply(records []domain.Record, criteria domain.FilterCriteria) ([]domain.Record, error)
}
