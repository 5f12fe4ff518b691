package services

import (
	"sort"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driving"
)

// Ensure DescribeService implements the interface.
var _ driving.DescribeService = (*DescribeService)(nil)

// DescribeService computes descriptive summaries of datasets.
type DescribeService struct{}

// NewDescribeService creates a describe service.
func NewDescribeService() *DescribeService {
	return &DescribeService{}
}

// Describe returns post, author, domain and time span figures.
func (s *DescribeService) Describe(records []domain.Record) domain.DatasetSummary {
	summary := domain.DatasetSummary{Posts: len(records)}

	authors := make(map[string]struct{})
	domains := make(map[string]struct{})
	sources := newCounter()

	for i := range records {
		r := &records[i]
		if r.Creator != "" {
			authors[r.Creator] = struct{}{}
		}
		if d := r.Domain(); d != "" {
			domains[d] = struct{}{}
		}
		sources.add(r.Source)

		if !r.HasTimestamp() {
			summary.Undated++
			continue
		}
		if summary.First.IsZero() || r.Timestamp.Before(summary.First) {
			summary.First = r.Timestamp
		}
		if r.Timestamp.After(summary.Last) {
			summary.Last = r.Timestamp
		}
	}

	summary.Authors = len(authors)
	summary.Domains = len(domains)
	summary.Sources = sources.sorted()
	return summary
}

// AuthorCounts counts records per creator, largest first.
func (s *DescribeService) AuthorCounts(records []domain.Record) []domain.Count {
	c := newCounter()
	for i := range records {
		c.add(records[i].Creator)
	}
	return c.sorted()
}

// DomainCounts counts records per URL domain, largest first.
// Records without a usable URL are not counted.
func (s *DescribeService) DomainCounts(records []domain.Record) []domain.Count {
	c := newCounter()
	for i := range records {
		if d := records[i].Domain(); d != "" {
			c.add(d)
		}
	}
	return c.sorted()
}

type counter map[string]int

func newCounter() counter {
	return make(counter)
}

func (c counter) add(key string) {
	c[key]++
}

// sorted returns the counts by count descending, then key ascending.
func (c counter) sorted() []domain.Count {
	out := make([]domain.Count, 0, len(c))
	for k, n := range c {
		out = append(out, domain.Count{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// top returns at most limit counts; limit <= 0 returns all.
func top(counts []domain.Count, limit int) []domain.Count {
	if limit > 0 && len(counts) > limit {
		return counts[:limit]
	}
	return counts
}
