package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()
	require.NotNil(t, km)

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{name: "quit", binding: km.Quit, keys: []string{"q", "ctrl+c"}},
		{name: "help", binding: km.Help, keys: []string{"?"}},
		{name: "back", binding: km.Back, keys: []string{"esc"}},
		{name: "find", binding: km.Find, keys: []string{"enter"}},
		{name: "next field", binding: km.NextField, keys: []string{"tab"}},
		{name: "previous field", binding: km.PrevField, keys: []string{"shift+tab"}},
		{name: "up", binding: km.Up, keys: []string{"up", "k"}},
		{name: "down", binding: km.Down, keys: []string{"down", "j"}},
		{name: "new route", binding: km.NewRoute, keys: []string{"n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_FormHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.FormHelp()

	require.Len(t, help, 3)
	assert.Equal(t, "find route", help[1].Help().Desc)
}

func TestKeyMap_RouteHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.RouteHelp()

	require.NotEmpty(t, help)
	assert.Equal(t, "new route", help[0].Help().Desc)
}

func TestKeyMap_FullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()

	require.Len(t, groups, 3)
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	assert.Equal(t, 9, total, "every binding appears once")
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("k", km.Up))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("", km.Find))
}
