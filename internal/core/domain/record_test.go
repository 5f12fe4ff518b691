package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecord_HasTimestamp(t *testing.T) {
	assert.False(t, (&Record{}).HasTimestamp())
	assert.True(t, (&Record{Timestamp: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}).HasTimestamp())
}

func TestRecord_Domain(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.example.com/a?b=c", "example.com"},
		{"http://News.YLE.fi/x", "news.yle.fi"},
		{"https://www.www.example.com", "www.example.com"},
		{"https://example.com:8080/", "example.com:8080"},
		{"not a url", ""},
		{"", ""},
		{"://bad", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			r := Record{URL: tt.url}
			assert.Equal(t, tt.want, r.Domain())
		})
	}
}

func TestNormaliseDomain(t *testing.T) {
	assert.Equal(t, "example.com", NormaliseDomain("  WWW.Example.COM "))
	assert.Equal(t, "wwwexample.com", NormaliseDomain("wwwexample.com"))
	assert.Equal(t, "", NormaliseDomain(""))
}
