// Package dateparse turns human-readable dates into time points.
//
// Absolute dates in any layout github.com/araddon/dateparse understands
// are accepted ("2020-01-02", "Jan 2, 2020 15:04", "1577923200").
// Relative phrases are resolved against the parser clock:
// "now", "today", "yesterday", "tomorrow" and "<n> <unit>s ago" with
// minute, hour, day, week, month or year units.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.DateParser = (*Parser)(nil)

var agoPattern = regexp.MustCompile(`^(\d+)\s+(minute|hour|day|week|month|year)s?\s+ago$`)

// Parser parses dates in a fixed location.
type Parser struct {
	loc *time.Location
	now func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithLocation sets the location used for dates without a zone.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		p.loc = loc
	}
}

// WithClock sets the clock relative phrases are resolved against.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// New creates a parser. Dates without a zone are read as UTC.
func New(opts ...Option) *Parser {
	p := &Parser{
		loc: time.UTC,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse returns the time s describes, or false when s is empty or
// not understood.
func (p *Parser) Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, ok := p.relative(strings.ToLower(s)); ok {
		return t, true
	}

	t, err := dateparse.ParseIn(s, p.loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (p *Parser) relative(s string) (time.Time, bool) {
	now := p.now().In(p.loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.loc)

	switch s {
	case "now":
		return now, true
	case "today":
		return midnight, true
	case "yesterday":
		return midnight.AddDate(0, 0, -1), true
	case "tomorrow":
		return midnight.AddDate(0, 0, 1), true
	}

	m := agoPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}

	switch m[2] {
	case "minute":
		return now.Add(-time.Duration(n) * time.Minute), true
	case "hour":
		return now.Add(-time.Duration(n) * time.Hour), true
	case "day":
		return now.AddDate(0, 0, -n), true
	case "week":
		return now.AddDate(0, 0, -7*n), true
	case "month":
		return now.AddDate(0, -n, 0), true
	default:
		return now.AddDate(-n, 0, 0), true
	}
}
