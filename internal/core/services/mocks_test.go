package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
	"github.com/custodia-labs/hybra-cli/internal/core/ports/driven"
	"github.com/custodia-labs/hybra-cli/internal/logger"
)

// mockDateParser understands RFC 3339 timestamps and YYYY-MM-DD dates.
type mockDateParser struct{}

func (mockDateParser) Parse(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// mockExporter records what it was asked to write.
type mockExporter struct {
	format  string
	err     error
	calls   int
	path    string
	records []domain.Record
}

func (m *mockExporter) Format() string { return m.format }

func (m *mockExporter) Export(_ context.Context, records []domain.Record, path string) error {
	m.calls++
	m.path = path
	m.records = records
	return m.err
}

type mockExporterRegistry struct {
	exporters map[string]driven.Exporter
}

func newMockExporterRegistry(exporters ...driven.Exporter) *mockExporterRegistry {
	r := &mockExporterRegistry{exporters: make(map[string]driven.Exporter)}
	for _, e := range exporters {
		r.Register(e)
	}
	return r
}

func (r *mockExporterRegistry) Register(e driven.Exporter) { r.exporters[e.Format()] = e }

func (r *mockExporterRegistry) Get(format string) (driven.Exporter, error) {
	if e, ok := r.exporters[format]; ok {
		return e, nil
	}
	return nil, domain.ErrUnsupportedFormat
}

func (r *mockExporterRegistry) Formats() []string {
	out := make([]string, 0, len(r.exporters))
	for f := range r.exporters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// mockLoader returns fixed records and remembers the directory it read.
type mockLoader struct {
	name    string
	records []domain.Record
	err     error
	dir     string
}

func (m *mockLoader) Name() string { return m.name }

func (m *mockLoader) Load(_ context.Context, dir string) ([]domain.Record, error) {
	m.dir = dir
	return m.records, m.err
}

type mockLoaderRegistry struct {
	loaders map[string]driven.Loader
}

func newMockLoaderRegistry(loaders ...driven.Loader) *mockLoaderRegistry {
	r := &mockLoaderRegistry{loaders: make(map[string]driven.Loader)}
	for _, l := range loaders {
		r.Register(l)
	}
	return r
}

func (r *mockLoaderRegistry) Register(l driven.Loader) { r.loaders[l.Name()] = l }

func (r *mockLoaderRegistry) Get(name string) (driven.Loader, error) {
	if l, ok := r.loaders[name]; ok {
		return l, nil
	}
	return nil, domain.ErrUnknownSource
}

func (r *mockLoaderRegistry) Names() []string {
	out := make([]string, 0, len(r.loaders))
	for n := range r.loaders {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// mockScriptRunner captures the command line it was given.
type mockScriptRunner struct {
	output  string
	err     error
	command string
	args    []string
	// seen holds the exported CSV contents while the script "runs".
	seen []byte
}

func (m *mockScriptRunner) Run(_ context.Context, command string, args ...string) (string, error) {
	m.command = command
	m.args = args
	if len(args) > 1 {
		m.seen, _ = os.ReadFile(args[1])
	}
	return m.output, m.err
}

var errBoom = errors.New("boom")

// captureNotices redirects logger output for the duration of a test.
func captureNotices(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })
	return &buf
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// ids returns the IDs of records in order.
func ids(records []domain.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func fixtureRecords() []domain.Record {
	return []domain.Record{
		{ID: "1", Source: "twitter", TextContent: "Cats and DOGS are nice", Creator: "alice", URL: "http://www.example.com/a", Timestamp: ts("2020-01-01T10:00:00Z")},
		{ID: "2", Source: "twitter", TextContent: "only cats", Creator: "bob", URL: "http://other.org/b", Timestamp: ts("2020-01-02T10:00:00Z")},
		{ID: "3", Source: "facebook", TextContent: "Concatenate the dogma", Creator: "Jos\u00e9", URL: "https://example.com/c", Timestamp: ts("2020-01-03T10:00:00Z")},
		{ID: "4", Source: "media", TextContent: "", Creator: "alice", URL: "::not a url", Fields: map[string]any{"likes": 12}},
		{ID: "5", Source: "media", TextContent: "Dogs, dogs everywhere", Creator: "carol", URL: "https://news.example.com/d", Timestamp: ts("2020-02-01T00:00:00Z"), Fields: map[string]any{"likes": 3}},
	}
}
