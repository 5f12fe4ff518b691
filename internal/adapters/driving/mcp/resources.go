package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/hybra-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for hybra resources.
	uriScheme = "hybra://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sources",
		Name:        "sources",
		Description: "Names of the data sources that can be loaded",
		MIMEType:    "application/json",
	}, s.handleSourcesResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "formats",
		Name:        "formats",
		Description: "File extensions records can be exported to",
		MIMEType:    "application/json",
	}, s.handleFormatsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "versions",
		Name:        "versions",
		Description: "Folders of the data directory with their versions",
		MIMEType:    "application/json",
	}, s.handleVersionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sources/{source}/summary",
		Name:        "source-summary",
		Description: "Summary of every record of a data source",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// handleSourcesResource returns the registered source names.
func (s *Server) handleSourcesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Dataset.Sources())
}

// handleFormatsResource returns the supported export formats.
func (s *Server) handleFormatsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	formats := []string{}
	if s.ports.Export != nil {
		formats = s.ports.Export.Formats()
	}
	return jsonResource(req.Params.URI, formats)
}

// handleVersionsResource describes the folders of the data directory.
func (s *Server) handleVersionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	versions, err := s.ports.Dataset.Versions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	return jsonResource(req.Params.URI, versions)
}

// handleSummaryResource summarises one data source.
func (s *Server) handleSummaryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// hybra://sources/{source}/summary
	source := extractSource(req.Params.URI)
	if source == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	records, err := s.ports.Dataset.Load(ctx, source, domain.LoadOptions{})
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", source, err)
	}
	return jsonResource(req.Params.URI, s.ports.Describe.Describe(records))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSource extracts the source from a URI like hybra://sources/{source}/summary.
func extractSource(uri string) string {
	const prefix = uriScheme + "sources/"
	const suffix = "/summary"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	source := strings.TrimSuffix(uri, suffix)
	if strings.Contains(source, "/") {
		return ""
	}
	return source
}
