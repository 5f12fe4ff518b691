package driven

import "time"

// DateParser turns a human-readable date or time into a time point.
type DateParser interface {
	// Parse returns the time and true, or false when s is empty
	// or cannot be understood.
	Parse(s string) (time.Time, bool)
}
