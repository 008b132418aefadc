package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	assert.NotEqual(t, ErrMissingPathService.Error(), ErrMissingStationService.Error())
}

func TestErrors_Messages(t *testing.T) {
	assert.Contains(t, ErrMissingPathService.Error(), "path service")
	assert.Contains(t, ErrMissingStationService.Error(), "station service")
}
