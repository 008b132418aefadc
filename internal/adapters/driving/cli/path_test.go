package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

func TestPathCmd_Flags(t *testing.T) {
	age := pathCmd.Flags().Lookup("age")
	require.NotNil(t, age)
	assert.Equal(t, "0", age.DefValue)
	assert.NotNil(t, pathCmd.Flags().Lookup("json"))
}

func TestPath_AcrossLines(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedNetwork(t)

	out, err := executeCommand(t, "", "path", "강남역", "여의도역")

	require.NoError(t, err)
	assert.Contains(t, out, "Route: 강남역 -> 잠실역 -> 여의도역")
	assert.Contains(t, out, "Distance: 15 km")
	assert.Contains(t, out, "Surcharge: 500")
	assert.Contains(t, out, "Fare: 1850")
	assert.NotContains(t, out, "(")
}

func TestPath_AgeDiscount(t *testing.T) {
	tests := []struct {
		age  string
		want string
	}{
		{age: "13", want: "Fare: 1200 (teenager)"},
		{age: "8", want: "Fare: 750 (child)"},
		{age: "30", want: "Fare: 1850\n"},
	}

	for _, tt := range tests {
		t.Run(tt.age, func(t *testing.T) {
			cleanup := setupTestServices()
			defer cleanup()
			seedNetwork(t)

			out, err := executeCommand(t, "", "path", "강남역", "여의도역", "--age", tt.age)

			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestPath_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedNetwork(t)

	out, err := executeCommand(t, "", "path", "여의도역", "강남역", "--json")
	require.NoError(t, err)

	var got routeJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Stations, 3)
	assert.Equal(t, "여의도역", got.Stations[0].Name)
	assert.Equal(t, "강남역", got.Stations[2].Name)
	assert.NotEmpty(t, got.Stations[1].ID)
	assert.Equal(t, 15, got.Distance)
	assert.Equal(t, 500, got.Surcharge)
	assert.Equal(t, 1850, got.Fare)
}

func TestPath_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		target error
		code   int
	}{
		{name: "same station", args: []string{"강남역", "강남역"}, target: domain.ErrSameStation, code: 2},
		{name: "station on no line", args: []string{"강남역", "교대역"}, target: domain.ErrStationNotFound, code: 3},
		{name: "unknown station", args: []string{"강남역", "판교역"}, target: domain.ErrNotFound, code: 3},
		{name: "negative age", args: []string{"강남역", "잠실역", "--age", "-1"}, target: domain.ErrInvalidInput, code: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestServices()
			defer cleanup()
			seedNetwork(t)

			_, err := executeCommand(t, "", append([]string{"path"}, tt.args...)...)

			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, tt.code, exitCode(err))
		})
	}
}

func TestPath_DisconnectedLines(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedNetwork(t)
	_, err := executeCommand(t, "", "station", "add", "정자역")
	require.NoError(t, err)
	_, err = executeCommand(t, "", "line", "create", "신분당선",
		"--up", "교대역", "--down", "정자역", "--distance", "12")
	require.NoError(t, err)

	_, err = executeCommand(t, "", "path", "강남역", "정자역")

	assert.ErrorIs(t, err, domain.ErrNoPath)
	assert.Equal(t, 1, exitCode(err))
}

func TestPath_NotConfigured(t *testing.T) {
	SetServices(nil)

	_, err := executeCommand(t, "", "path", "강남역", "잠실역")

	assert.EqualError(t, err, "path service not configured")
}
