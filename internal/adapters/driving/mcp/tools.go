package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

// defaultLimit caps the records and counts returned by a tool call.
const defaultLimit = 50

// DescribeInput is the input schema for the describe tool.
type DescribeInput struct {
	Source string `json:"source" jsonschema:"data source name, e.g. twitter, facebook or media"`
	Folder string `json:"folder,omitempty" jsonschema:"optional sub-folder of the source directory"`
}

// FilterInput is the input schema for the filter tool.
type FilterInput struct {
	Source    string   `json:"source" jsonschema:"data source name, e.g. twitter, facebook or media"`
	Folder    string   `json:"folder,omitempty" jsonschema:"optional sub-folder of the source directory"`
	Terms     []string `json:"terms,omitempty" jsonschema:"words or phrases the text must contain"`
	WholeWord bool     `json:"whole_word,omitempty" jsonschema:"match terms against whole words instead of substrings"`
	AnyTerm   bool     `json:"any_term,omitempty" jsonschema:"keep records matching any term instead of all terms"`
	Authors   []string `json:"authors,omitempty" jsonschema:"keep records created by these authors"`
	Domains   []string `json:"domains,omitempty" jsonschema:"keep records linking to these domains"`
	After     string   `json:"after,omitempty" jsonschema:"keep records published after this date"`
	Before    string   `json:"before,omitempty" jsonschema:"keep records published before this date"`
	Where     string   `json:"where,omitempty" jsonschema:"boolean expression over id, source, text_content, timestamp, creator, url, domain and fields"`
	Limit     int      `json:"limit,omitempty" jsonschema:"maximum number of records to return (default 50)"`
}

// FilterOutput is the output schema for the filter tool.
type FilterOutput struct {
	Records []RecordOutput `json:"records"`
	Count   int            `json:"count"`
	Total   int            `json:"total"`
}

// RecordOutput is a record as returned to the assistant.
type RecordOutput struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	TextContent string `json:"text_content"`
	Timestamp   string `json:"timestamp,omitempty"`
	Creator     string `json:"creator"`
	URL         string `json:"url,omitempty"`
}

// DescribeOutput is the output schema for the describe tool.
type DescribeOutput struct {
	Posts   int            `json:"posts"`
	Authors int            `json:"authors"`
	Domains int            `json:"domains"`
	First   string         `json:"first,omitempty"`
	Last    string         `json:"last,omitempty"`
	Undated int            `json:"undated"`
	Sources []domain.Count `json:"sources"`
}

// CountsInput is the input schema for the counting tools.
type CountsInput struct {
	Source string `json:"source" jsonschema:"data source name, e.g. twitter, facebook or media"`
	Folder string `json:"folder,omitempty" jsonschema:"optional sub-folder of the source directory"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of entries to return (default 50)"`
}

// CountsOutput is the output schema for the counting tools.
type CountsOutput struct {
	Counts []domain.Count `json:"counts"`
	Total  int            `json:"total"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "filter",
		Description: "Filter the records of a dataset by text, author, domain, date range or expression",
	}, s.handleFilter)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "describe",
		Description: "Summarise a dataset: posts, authors, domains and time span",
	}, s.handleDescribe)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "author_counts",
		Description: "Count the records of each author, largest first",
	}, s.handleAuthorCounts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "domain_counts",
		Description: "Count the records linking to each domain, largest first",
	}, s.handleDomainCounts)
}

func (s *Server) load(ctx context.Context, source, folder string) ([]domain.Record, error) {
	return s.ports.Dataset.Load(ctx, source, domain.LoadOptions{Folder: folder})
}

// handleFilter handles the filter tool invocation.
func (s *Server) handleFilter(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FilterInput,
) (*mcp.CallToolResult, FilterOutput, error) {
	records, err := s.load(ctx, input.Source, input.Folder)
	if err != nil {
		return nil, FilterOutput{}, err
	}

	criteria := domain.FilterCriteria{
		Text: domain.TextQuery{
			Terms:      input.Terms,
			Substrings: !input.WholeWord,
			Inclusive:  !input.AnyTerm,
		},
		Authors: input.Authors,
		Domains: input.Domains,
		After:   input.After,
		Before:  input.Before,
		Where:   input.Where,
	}
	selected, err := s.ports.Filter.Apply(records, criteria)
	if err != nil {
		return nil, FilterOutput{}, err
	}

	shown := selected[:min(len(selected), limitOrDefault(input.Limit))]
	output := FilterOutput{
		Records: make([]RecordOutput, len(shown)),
		Count:   len(shown),
		Total:   len(selected),
	}
	for i := range shown {
		output.Records[i] = RecordOutput{
			ID:          shown[i].ID,
			Source:      shown[i].Source,
			TextContent: shown[i].TextContent,
			Timestamp:   formatTime(shown[i].Timestamp),
			Creator:     shown[i].Creator,
			URL:         shown[i].URL,
		}
	}

	return nil, output, nil
}

// handleDescribe handles the describe tool invocation.
func (s *Server) handleDescribe(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DescribeInput,
) (*mcp.CallToolResult, DescribeOutput, error) {
	records, err := s.load(ctx, input.Source, input.Folder)
	if err != nil {
		return nil, DescribeOutput{}, err
	}

	summary := s.ports.Describe.Describe(records)
	return nil, DescribeOutput{
		Posts:   summary.Posts,
		Authors: summary.Authors,
		Domains: summary.Domains,
		First:   formatTime(summary.First),
		Last:    formatTime(summary.Last),
		Undated: summary.Undated,
		Sources: summary.Sources,
	}, nil
}

// handleAuthorCounts handles the author_counts tool invocation.
func (s *Server) handleAuthorCounts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CountsInput,
) (*mcp.CallToolResult, CountsOutput, error) {
	records, err := s.load(ctx, input.Source, input.Folder)
	if err != nil {
		return nil, CountsOutput{}, err
	}
	return nil, countsOutput(s.ports.Describe.AuthorCounts(records), input.Limit), nil
}

// handleDomainCounts handles the domain_counts tool invocation.
func (s *Server) handleDomainCounts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CountsInput,
) (*mcp.CallToolResult, CountsOutput, error) {
	records, err := s.load(ctx, input.Source, input.Folder)
	if err != nil {
		return nil, CountsOutput{}, err
	}
	return nil, countsOutput(s.ports.Describe.DomainCounts(records), input.Limit), nil
}

func countsOutput(counts []domain.Count, limit int) CountsOutput {
	return CountsOutput{
		Counts: counts[:min(len(counts), limitOrDefault(limit))],
		Total:  len(counts),
	}
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return limit
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
