package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

func TestExtractLineID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "valid line stations URI", uri: "metro://lines/line-2/stations", expected: "line-2"},
		{name: "invalid prefix", uri: "file://lines/line-2/stations", expected: ""},
		{name: "missing stations suffix", uri: "metro://lines/line-2", expected: ""},
		{name: "empty URI", uri: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractLineID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func testLine(t *testing.T) *domain.Line {
	t.Helper()
	line, err := domain.NewLine("line-8", "8호선", "bg-pink-600", 500)
	require.NoError(t, err)
	require.NoError(t, line.AddSection("jamsil", "yeouido", 5))
	require.NoError(t, line.AddSection("sadang", "jamsil", 4))
	return line
}

func TestServer_handleLinesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("nil line service returns empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Path: &mockPathService{}})
		require.NoError(t, err)

		result, err := server.handleLinesResource(ctx, makeReadResourceRequest("metro://lines"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns lines with ordered stations", func(t *testing.T) {
		lines := &mockLineService{lines: []*domain.Line{testLine(t)}}
		server, err := NewServer(&Ports{Path: &mockPathService{}, Line: lines})
		require.NoError(t, err)

		result, err := server.handleLinesResource(ctx, makeReadResourceRequest("metro://lines"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var infos []lineInfo
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
		require.Len(t, infos, 1)
		assert.Equal(t, "8호선", infos[0].Name)
		assert.Equal(t, 500, infos[0].Surcharge)
		assert.Equal(t, 9, infos[0].Distance)
		assert.Equal(t, []string{"sadang", "jamsil", "yeouido"}, infos[0].Stations)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		lines := &mockLineService{err: errors.New("disk on fire")}
		server, err := NewServer(&Ports{Path: &mockPathService{}, Line: lines})
		require.NoError(t, err)

		_, err = server.handleLinesResource(ctx, makeReadResourceRequest("metro://lines"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing lines")
	})
}

func TestServer_handleLineStationsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stations in order", func(t *testing.T) {
		lines := &mockLineService{stations: []domain.Station{
			{ID: "sadang", Name: "사당역"},
			{ID: "jamsil", Name: "잠실역"},
		}}
		server, err := NewServer(&Ports{Path: &mockPathService{}, Line: lines})
		require.NoError(t, err)

		result, err := server.handleLineStationsResource(ctx, makeReadResourceRequest("metro://lines/line-8/stations"))
		require.NoError(t, err)

		var stations []StationOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &stations))
		assert.Equal(t, []StationOutput{{ID: "sadang", Name: "사당역"}, {ID: "jamsil", Name: "잠실역"}}, stations)
	})

	t.Run("unknown line is not found", func(t *testing.T) {
		lines := &mockLineService{err: domain.ErrLineNotFound}
		server, err := NewServer(&Ports{Path: &mockPathService{}, Line: lines})
		require.NoError(t, err)

		_, err = server.handleLineStationsResource(ctx, makeReadResourceRequest("metro://lines/missing/stations"))

		assert.Error(t, err)
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Path: &mockPathService{}, Line: &mockLineService{}})
		require.NoError(t, err)

		_, err = server.handleLineStationsResource(ctx, makeReadResourceRequest("metro://lines/line-8"))

		assert.Error(t, err)
	})

	t.Run("nil line service is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Path: &mockPathService{}})
		require.NoError(t, err)

		_, err = server.handleLineStationsResource(ctx, makeReadResourceRequest("metro://lines/line-8/stations"))

		assert.Error(t, err)
	})
}
