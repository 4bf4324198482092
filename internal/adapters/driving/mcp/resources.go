package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for drawwatch resources.
	uriScheme = "drawwatch://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "schedule",
		Name:        "schedule",
		Description: "Draw time of every configured source, in the reference time zone",
		MIMEType:    "application/json",
	}, s.handleScheduleResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sources/{sourceId}",
		Name:        "source",
		Description: "Configuration of a single source",
		MIMEType:    "application/json",
	}, s.handleSourceResource)
}

// handleScheduleResource returns the source schedule.
func (s *Server) handleScheduleResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type entry struct {
		ID       string `json:"id"`
		Name     string `json:"name,omitempty"`
		DrawTime string `json:"draw_time"`
		Valid    bool   `json:"valid"`
	}

	sources := s.ports.Source.List()
	entries := make([]entry, len(sources))
	for i, src := range sources {
		entries[i] = entry{ID: src.ID, Name: src.Name, DrawTime: src.RawDrawTime, Valid: src.Valid}
	}

	return jsonResource(req.Params.URI, entries)
}

// handleSourceResource returns one source's configuration.
func (s *Server) handleSourceResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractSourceID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	src, err := s.ports.Source.Get(id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return jsonResource(req.Params.URI, struct {
		ID       string `json:"id"`
		Name     string `json:"name,omitempty"`
		DrawTime string `json:"draw_time"`
		URL      string `json:"url"`
		Valid    bool   `json:"valid"`
		Defect   string `json:"defect,omitempty"`
	}{src.ID, src.Name, src.RawDrawTime, src.URL, src.Valid, src.Defect})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSourceID extracts the source ID from a URI like drawwatch://sources/{sourceId}.
func extractSourceID(uri string) string {
	const prefix = uriScheme + "sources/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

