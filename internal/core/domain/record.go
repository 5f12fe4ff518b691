package domain

import (
	"net/url"
	"strings"
	"time"
)

// Record is a single dataset entry, such as a post or an article.
// Loaders create records; filters only ever select among them.
type Record struct {
	// ID is a stable identifier for the record.
	ID string `json:"id"`

	// Source names the data source the record was loaded from.
	Source string `json:"source"`

	// TextContent is the body text used by the text filter.
	TextContent string `json:"text_content"`

	// Timestamp is when the entry was published.
	// The zero value means the time is unknown.
	Timestamp time.Time `json:"timestamp"`

	// Creator identifies the author of the entry.
	Creator string `json:"creator"`

	// URL is the address of the entry or the link it shares.
	URL string `json:"url"`

	// Fields holds every other key of the raw entry.
	Fields map[string]any `json:"fields,omitempty"`
}

// HasTimestamp reports whether the record carries a known publication time.
func (r *Record) HasTimestamp() bool {
	return !r.Timestamp.IsZero()
}

// Domain returns the host of the record URL, lowercased and without a
// leading "www.". It returns an empty string when the URL has no host or
// cannot be parsed.
func (r *Record) Domain() string {
	u, err := url.Parse(r.URL)
	if err != nil {
		return ""
	}
	return NormaliseDomain(u.Host)
}

// NormaliseDomain lowercases a host name and strips one leading "www.".
func NormaliseDomain(host string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
}
