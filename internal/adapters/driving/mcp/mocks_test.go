package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// mockDatasetService is a mock implementation of driving.DatasetService.
type mockDatasetService struct {
	records  []domain.Record
	versions []domain.DataVersion
	err      error

	source string
	opts   domain.LoadOptions
}

func (m *mockDatasetService) Sources() []string {
	return []string{"facebook", "media", "twitter"}
}

func (m *mockDatasetService) Load(_ context.Context, source string, opts domain.LoadOptions) ([]domain.Record, error) {
	m.source = source
	m.opts = opts
	return m.records, m.err
}

func (m *mockDatasetService) Versions(_ context.Context) ([]domain.DataVersion, error) {
	return m.versions, m.err
}

func (m *mockDatasetService) DataDir() string {
	return "/data"
}

// mockFilterService is a mock implementation of driving.FilterService.
// Apply keeps the first record and remembers the criteria.
type mockFilterService struct {
	criteria domain.FilterCriteria
	err      error
}

func (m *mockFilterService) FilterText(records []domain.Record, _ domain.TextQuery) []domain.Record {
	return records
}

func (m *mockFilterService) FilterDatetime(records []domain.Record, _, _ string) []domain.Record {
	return records
}

func (m *mockFilterService) FilterAuthor(records []domain.Record, _ []string) []domain.Record {
	return records
}

func (m *mockFilterService) FilterDomain(records []domain.Record, _ []string) []domain.Record {
	return records
}

func (m *mockFilterService) FilterWhere(records []domain.Record, _ string) ([]domain.Record, error) {
	return records, m.err
}

func (m *mockFilterService) Apply(records []domain.Record, criteria domain.FilterCriteria) ([]domain.Record, error) {
	m.criteria = criteria
	if m.err != nil {
		return nil, m.err
	}
	return records[:min(len(records), 1)], nil
}

// mockDescribeService is a mock implementation of driving.DescribeService.
type mockDescribeService struct{}

func (m *mockDescribeService) Describe(records []domain.Record) domain.DatasetSummary {
	return domain.DatasetSummary{
		Posts:   len(records),
		First:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Sources: []domain.Count{{Key: "twitter", Count: len(records)}},
	}
}

func (m *mockDescribeService) AuthorCounts(_ []domain.Record) []domain.Count {
	return []domain.Count{{Key: "alice", Count: 2}, {Key: "bob", Count: 1}}
}

func (m *mockDescribeService) DomainCounts(_ []domain.Record) []domain.Count {
	return []domain.Count{{Key: "example.com", Count: 3}}
}

// mockExportService is a mock implementation of driving.ExportService.
type mockExportService struct{}

func (m *mockExportService) Export(_ context.Context, _ []domain.Record, path string) domain.ExportResult {
	return domain.ExportResult{Path: path}
}

func (m *mockExportService) Formats() []string {
	return []string{"csv", "json"}
}

func testPorts() (*Ports, *mockDatasetService, *mockFilterService) {
	dataset := &mockDatasetService{
		records: []domain.Record{
			{ID: "1", Source: "twitter", TextContent: "cats", Creator: "alice",
				Timestamp: time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)},
			{ID: "2", Source: "twitter", TextContent: "dogs", Creator: "bob"},
		},
	}
	filter := &mockFilterService{}
	return &Ports{
		Dataset:  dataset,
		Filter:   filter,
		Describe: &mockDescribeService{},
		Export:   &mockExportService{},
	}, dataset, filter
}
