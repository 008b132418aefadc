package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// FindPathInput is the input schema for the find_path tool.
type FindPathInput struct {
	Source string `json:"source" jsonschema:"departure station ID or name"`
	Target string `json:"target" jsonschema:"arrival station ID or name"`
	Age    int    `json:"age,omitempty" jsonschema:"rider age in years for fare discounts (0 = adult)"`
}

// FindPathOutput is the output schema for the find_path tool.
type FindPathOutput struct {
	Stations  []StationOutput `json:"stations"`
	Distance  int             `json:"distance"`
	Surcharge int             `json:"surcharge"`
	Fare      int             `json:"fare"`
}

// StationOutput represents a station on a route or line.
type StationOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_path",
		Description: "Find the shortest route between two metro stations, with its distance and fare",
	}, s.handleFindPath)
}

// handleFindPath handles the find_path tool invocation.
func (s *Server) handleFindPath(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindPathInput,
) (*mcp.CallToolResult, FindPathOutput, error) {
	source, err := s.resolveStation(ctx, input.Source)
	if err != nil {
		return nil, FindPathOutput{}, err
	}
	target, err := s.resolveStation(ctx, input.Target)
	if err != nil {
		return nil, FindPathOutput{}, err
	}

	route, err := s.ports.Path.FindPath(ctx, source, target, domain.PathOptions{Age: input.Age})
	if err != nil {
		return nil, FindPathOutput{}, err
	}

	output := FindPathOutput{
		Stations:  stationOutputs(route.Stations),
		Distance:  route.Distance,
		Surcharge: route.Surcharge,
		Fare:      route.Fare,
	}
	return nil, output, nil
}

// resolveStation maps a tool argument to a station ID, accepting names when
// the station port is available.
func (s *Server) resolveStation(ctx context.Context, idOrName string) (domain.StationID, error) {
	if idOrName == "" {
		return "", fmt.Errorf("%w: station is required", domain.ErrInvalidInput)
	}
	if s.ports.Station == nil {
		return domain.StationID(idOrName), nil
	}
	station, err := s.ports.Station.Resolve(ctx, idOrName)
	if err != nil {
		return "", fmt.Errorf("resolving station %q: %w", idOrName, err)
	}
	return station.ID, nil
}

func stationOutputs(stations []domain.Station) []StationOutput {
	out := make([]StationOutput, len(stations))
	for i, st := range stations {
		out[i] = StationOutput{ID: st.ID.String(), Name: st.Name}
	}
	return out
}
