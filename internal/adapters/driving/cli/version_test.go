package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	original := version
	defer func() { version = original }()
	SetVersion("1.4.0")

	out, err := executeCommand(t, "", "version")

	require.NoError(t, err)
	assert.Equal(t, "metro version 1.4.0\n", out)
}
