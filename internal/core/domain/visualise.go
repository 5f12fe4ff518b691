package domain

import (
	"fmt"
	"time"
)

// Interval is the width of a timeline bucket.
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

// ParseInterval converts a string to an Interval.
func ParseInterval(s string) (Interval, error) {
	switch Interval(s) {
	case IntervalDay, IntervalWeek, IntervalMonth:
		return Interval(s), nil
	case "":
		return IntervalDay, nil
	}
	return "", fmt.Errorf("%w: interval %q (want day, week or month)", ErrInvalidInput, s)
}

// Truncate returns the start of the bucket containing t, in UTC.
// Weeks start on Monday.
func (i Interval) Truncate(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch i {
	case IntervalWeek:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case IntervalMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

// TimelineBucket counts the records published within one interval.
type TimelineBucket struct {
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}

// NodeKind distinguishes the two sides of the author network.
type NodeKind string

const (
	NodeAuthor NodeKind = "author"
	NodeDomain NodeKind = "domain"
)

// Node is a vertex of the author network.
type Node struct {
	ID   string   `json:"id"`
	Kind NodeKind `json:"kind"`
	// Posts is the number of records touching this node.
	Posts int `json:"posts"`
}

// Edge links an author to a domain they shared.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// Graph is the bipartite author/domain network of a dataset.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}
