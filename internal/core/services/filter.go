package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cloudflare/ahocorasick"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driving"
	"github.com/custodia-labs/hybra-cli/internal/logger"
)

// Ensure FilterService implements the interface.
var _ driving.FilterService = (*FilterService)(nil)

// Notices printed when a filter is called without criteria.
const (
	noticeNoDates   = "No dates given for filtering!"
	noticeNoAuthors = "No authors given for filtering!"
	noticeNoDomains = "No domains given for filtering!"
)

// wordPattern matches a run of Unicode letters, digits and underscores.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// FilterService selects records with linear-scan predicates.
type FilterService struct {
	dates driven.DateParser
}

// NewFilterService creates a filter service parsing date bounds with dates.
func NewFilterService(dates driven.DateParser) *FilterService {
	return &FilterService{dates: dates}
}

// FilterText keeps records whose text matches the query terms.
func (s *FilterService) FilterText(records []domain.Record, query domain.TextQuery) []domain.Record {
	terms := termSet(query.Terms)
	if len(terms) == 0 {
		if query.Inclusive {
			return clone(records)
		}
		return []domain.Record{}
	}

	var count func(text string) int
	if query.Substrings {
		count = substringCounter(terms)
	} else {
		count = wordCounter(terms)
	}

	logger.Debug("text filter: %d terms, substrings=%t, inclusive=%t", len(terms), query.Substrings, query.Inclusive)

	return selectRecords(records, func(r *domain.Record) bool {
		n := count(strings.ToLower(r.TextContent))
		if query.Inclusive {
			return n == len(terms)
		}
		return n > 0
	})
}

// FilterDatetime keeps records published strictly between the parsed bounds.
func (s *FilterService) FilterDatetime(records []domain.Record, after, before string) []domain.Record {
	from, hasFrom := s.parseDate(after)
	to, hasTo := s.parseDate(before)

	if !hasFrom && !hasTo {
		logger.Notice(noticeNoDates)
		return clone(records)
	}

	return between(records, from, hasFrom, to, hasTo)
}

// between keeps records with from < timestamp < to, ignoring a missing bound.
// Records without a timestamp never match.
func between(records []domain.Record, from time.Time, hasFrom bool, to time.Time, hasTo bool) []domain.Record {
	logger.Debug("datetime filter: after=%v (%t) before=%v (%t)", from, hasFrom, to, hasTo)

	return selectRecords(records, func(r *domain.Record) bool {
		if !r.HasTimestamp() {
			return false
		}
		if hasFrom && !r.Timestamp.After(from) {
			return false
		}
		if hasTo && !r.Timestamp.Before(to) {
			return false
		}
		return true
	})
}

// FilterAuthor keeps records whose creator is one of authors.
func (s *FilterService) FilterAuthor(records []domain.Record, authors []string) []domain.Record {
	set := make(map[string]struct{}, len(authors))
	for _, a := range authors {
		set[norm.NFC.String(a)] = struct{}{}
	}

	if len(set) == 0 {
		logger.Notice(noticeNoAuthors)
		return clone(records)
	}

	return selectRecords(records, func(r *domain.Record) bool {
		_, ok := set[norm.NFC.String(r.Creator)]
		return ok
	})
}

// FilterDomain keeps records whose URL host is one of domains.
func (s *FilterService) FilterDomain(records []domain.Record, domains []string) []domain.Record {
	set := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		set[domain.NormaliseDomain(d)] = struct{}{}
	}

	if len(set) == 0 {
		logger.Notice(noticeNoDomains)
		return clone(records)
	}

	return selectRecords(records, func(r *domain.Record) bool {
		host := r.Domain()
		if host == "" {
			return false
		}
		_, ok := set[host]
		return ok
	})
}

// FilterWhere keeps records for which the boolean expression is true.
// The expression sees id, source, text_content, timestamp, creator,
// url, domain and fields. A record the expression cannot be evaluated
// on, such as one lacking a referenced field, is dropped.
func (s *FilterService) FilterWhere(records []domain.Record, expression string) ([]domain.Record, error) {
	program, err := compileWhere(expression)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Record, 0, len(records))
	skipped := 0
	for i := range records {
		result, err := expr.Run(program, whereEnv(&records[i]))
		if err != nil {
			skipped++
			logger.Debug("where: record %s dropped: %v", records[i].ID, err)
			continue
		}
		if ok, _ := result.(bool); ok {
			out = append(out, records[i])
		}
	}
	if skipped > 0 {
		logger.Debug("where: %d of %d records could not be evaluated", skipped, len(records))
	}
	return out, nil
}

// Apply runs every set criterion in turn: text, author, domain,
// datetime, then where. Unset criteria are skipped silently.
func (s *FilterService) Apply(records []domain.Record, criteria domain.FilterCriteria) ([]domain.Record, error) {
	out := clone(records)

	if !criteria.Text.IsZero() {
		out = s.FilterText(out, criteria.Text)
	}
	if len(criteria.Authors) > 0 {
		out = s.FilterAuthor(out, criteria.Authors)
	}
	if len(criteria.Domains) > 0 {
		out = s.FilterDomain(out, criteria.Domains)
	}
	from, hasFrom := s.parseDate(criteria.After)
	to, hasTo := s.parseDate(criteria.Before)
	if hasFrom || hasTo {
		out = between(out, from, hasFrom, to, hasTo)
	}
	if criteria.Where != "" {
		var err error
		out, err = s.FilterWhere(out, criteria.Where)
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("apply: %d of %d records selected", len(out), len(records))
	return out, nil
}

func (s *FilterService) parseDate(v string) (t time.Time, ok bool) {
	if v == "" || s.dates == nil {
		return t, false
	}
	return s.dates.Parse(v)
}

// termSet normalises terms to lowercase NFC and removes duplicates,
// keeping first-seen order.
func termSet(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(norm.NFC.String(t))
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// substringCounter returns a function counting how many distinct terms
// occur anywhere in a text. The empty term always occurs.
func substringCounter(terms []string) func(string) int {
	empty := 0
	patterns := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == "" {
			empty = 1
			continue
		}
		patterns = append(patterns, t)
	}
	if len(patterns) == 0 {
		return func(string) int { return empty }
	}

	matcher := ahocorasick.NewStringMatcher(patterns)
	return func(text string) int {
		return empty + len(matcher.Match([]byte(norm.NFC.String(text))))
	}
}

// wordCounter returns a function counting how many distinct terms are
// whole words of a text.
func wordCounter(terms []string) func(string) int {
	return func(text string) int {
		words := make(map[string]struct{})
		for _, w := range wordPattern.FindAllString(norm.NFC.String(text), -1) {
			words[w] = struct{}{}
		}
		n := 0
		for _, t := range terms {
			if _, ok := words[t]; ok {
				n++
			}
		}
		return n
	}
}

func compileWhere(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression,
		expr.Env(whereEnv(&domain.Record{})),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: where expression: %v", domain.ErrInvalidInput, err)
	}
	return program, nil
}

func whereEnv(r *domain.Record) map[string]any {
	fields := r.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	return map[string]any{
		"id":           r.ID,
		"source":       r.Source,
		"text_content": r.TextContent,
		"timestamp":    r.Timestamp,
		"creator":      r.Creator,
		"url":          r.URL,
		"domain":       r.Domain(),
		"fields":       fields,
	}
}

// selectRecords returns the records satisfying keep, in input order.
func selectRecords(records []domain.Record, keep func(*domain.Record) bool) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for i := range records {
		if keep(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

func clone(records []domain.Record) []domain.Record {
	return append(make([]domain.Record, 0, len(records)), records...)
}
