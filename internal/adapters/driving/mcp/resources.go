package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for metro resources.
	uriScheme = "metro://"
)

// lineInfo is the JSON shape of a line resource entry.
type lineInfo struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Color     string   `json:"color"`
	Surcharge int      `json:"surcharge"`
	Distance  int      `json:"distance"`
	Stations  []string `json:"stations"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "lines",
		Name:        "lines",
		Description: "All metro lines with their stations in travel order",
		MIMEType:    "application/json",
	}, s.handleLinesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "lines/{lineId}/stations",
		Name:        "line-stations",
		Description: "Stations of a specific line in travel order",
		MIMEType:    "application/json",
	}, s.handleLineStationsResource)
}

// handleLinesResource returns every line.
func (s *Server) handleLinesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Line == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	lines, err := s.ports.Line.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing lines: %w", err)
	}

	infos := make([]lineInfo, len(lines))
	for i, line := range lines {
		stations := line.Stations()
		ids := make([]string, len(stations))
		for j, id := range stations {
			ids[j] = id.String()
		}
		infos[i] = lineInfo{
			ID:        line.ID.String(),
			Name:      line.Name,
			Color:     line.Color,
			Surcharge: line.Surcharge,
			Distance:  line.TotalDistance(),
			Stations:  ids,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling lines: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// handleLineStationsResource returns the stations of one line.
func (s *Server) handleLineStationsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Line == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// metro://lines/{lineId}/stations
	lineID := extractLineID(req.Params.URI)
	if lineID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	stations, err := s.ports.Line.Stations(ctx, domain.LineID(lineID))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("listing line stations: %w", err)
	}

	data, err := json.MarshalIndent(stationOutputs(stations), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling stations: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractLineID extracts the line ID from a URI like metro://lines/{lineId}/stations.
func extractLineID(uri string) string {
	const prefix = uriScheme + "lines/"
	const suffix = "/stations"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
