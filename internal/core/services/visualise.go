package services

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driving"
)

// Ensure VisualiseService implements the interface.
var _ driving.VisualiseService = (*VisualiseService)(nil)

// minWordLength is the shortest word, in runes, kept in a word cloud.
const minWordLength = 3

// stopWords are dropped from word clouds. The datasets are mostly
// English and Finnish.
var stopWords = toSet(
	// English
	"the", "and", "for", "are", "but", "not", "you", "all", "any", "can",
	"had", "her", "was", "one", "our", "out", "has", "have", "his", "how",
	"its", "who", "did", "get", "him", "she", "too", "use", "that", "this",
	"with", "from", "they", "will", "would", "there", "their", "what",
	"about", "which", "when", "were", "been", "than", "then", "them",
	"into", "only", "just", "also", "more", "some", "your", "http", "https",
	"www",
	// Finnish
	"että", "oli", "ole", "ovat", "kun", "niin", "mutta", "tai", "jos",
	"joka", "mikä", "sen", "tämä", "sitä", "ettei", "myös", "vain", "kuin",
	"nyt", "jo", "hän", "ne", "he", "me", "te", "se", "on", "ja", "ei",
)

// VisualiseService computes the data behind timelines, networks and
// word clouds. Drawing them is left to the caller.
type VisualiseService struct{}

// NewVisualiseService creates a visualise service.
func NewVisualiseService() *VisualiseService {
	return &VisualiseService{}
}

// Timeline counts dated records per interval, oldest first.
// Intervals without records are omitted.
func (s *VisualiseService) Timeline(records []domain.Record, interval domain.Interval) []domain.TimelineBucket {
	counts := make(map[time.Time]int)
	for i := range records {
		if !records[i].HasTimestamp() {
			continue
		}
		counts[interval.Truncate(records[i].Timestamp)]++
	}

	buckets := make([]domain.TimelineBucket, 0, len(counts))
	for start, n := range counts {
		buckets = append(buckets, domain.TimelineBucket{Start: start, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})
	return buckets
}

// Network links each creator to the domains they shared. Records
// without a creator or a usable URL are left out.
func (s *VisualiseService) Network(records []domain.Record) domain.Graph {
	type edgeKey struct{ author, domain string }

	authors := newCounter()
	domains := newCounter()
	edges := make(map[edgeKey]int)

	for i := range records {
		author, host := records[i].Creator, records[i].Domain()
		if author == "" || host == "" {
			continue
		}
		authors.add(author)
		domains.add(host)
		edges[edgeKey{author, host}]++
	}

	graph := domain.Graph{
		Nodes: make([]domain.Node, 0, len(authors)+len(domains)),
		Edges: make([]domain.Edge, 0, len(edges)),
	}
	for _, c := range sortedKeys(authors) {
		graph.Nodes = append(graph.Nodes, domain.Node{ID: c.Key, Kind: domain.NodeAuthor, Posts: c.Count})
	}
	for _, c := range sortedKeys(domains) {
		graph.Nodes = append(graph.Nodes, domain.Node{ID: c.Key, Kind: domain.NodeDomain, Posts: c.Count})
	}
	for k, n := range edges {
		graph.Edges = append(graph.Edges, domain.Edge{Source: k.author, Target: k.domain, Weight: n})
	}
	sort.Slice(graph.Edges, func(i, j int) bool {
		a, b := graph.Edges[i], graph.Edges[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.Target < b.Target
	})
	return graph
}

// WordCloud returns word frequencies across the records' text, most
// frequent first. Stop words and words shorter than three letters are
// dropped.
func (s *VisualiseService) WordCloud(records []domain.Record, limit int) []domain.Count {
	c := newCounter()
	for i := range records {
		for _, w := range wordPattern.FindAllString(strings.ToLower(records[i].TextContent), -1) {
			if utf8.RuneCountInString(w) < minWordLength {
				continue
			}
			if _, stop := stopWords[w]; stop {
				continue
			}
			c.add(w)
		}
	}
	return top(c.sorted(), limit)
}

// sortedKeys returns counts ordered by key.
func sortedKeys(c counter) []domain.Count {
	out := make([]domain.Count, 0, len(c))
	for k, n := range c {
		out = append(out, domain.Count{Key: k, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
