package driving

import "github.com/custodia-labs/hybra-cli/internal/core/domain"

// VisualiseService computes the data drawn by timelines, networks and word clouds.
type VisualiseService interface {
	// Timeline counts records per interval, oldest first.
	Timeline(records []domain.Record, interval domain.Interval) []domain.TimelineBucket

	// Network links authors to the domains they shared.
	Network(records []domain.Record) domain.Graph

	// WordCloud returns the most frequent words, at most limit of them.
	// A limit of zero or less returns every word.
	WordCloud(records []domain.Record, limit int) []domain.Count
}
