package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

func TestFavoriteCmd_MemberFlag(t *testing.T) {
	flag := favoriteCmd.PersistentFlags().Lookup("member")
	require.NotNil(t, flag)
	assert.Equal(t, "m", flag.Shorthand)
}

func TestFavorite_RequiresMember(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := executeCommand(t, "", "favorite", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "member")
}

func TestFavorite_AddListRemove(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedNetwork(t)

	out, err := executeCommand(t, "", "favorite", "add", "강남역", "여의도역", "--member", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "강남역 -> 여의도역")

	favorites, err := favoriteService.List(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	id := favorites[0].ID

	out, err = executeCommand(t, "", "favorite", "list", "-m", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Favorites for alice:")
	assert.Contains(t, out, id)
	assert.Contains(t, out, "강남역 -> 여의도역")

	out, err = executeCommand(t, "", "favorite", "remove", id, "-m", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed favorite "+id)

	out, err = executeCommand(t, "", "favorite", "list", "-m", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "No favorites for alice.")
}

func TestFavorite_OtherMemberCannotRemove(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedNetwork(t)

	_, err := executeCommand(t, "", "favorite", "add", "강남역", "잠실역", "-m", "alice")
	require.NoError(t, err)
	favorites, err := favoriteService.List(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, favorites, 1)

	_, err = executeCommand(t, "", "favorite", "remove", favorites[0].ID, "-m", "bob")

	assert.ErrorIs(t, err, domain.ErrForbidden)
	out, err := executeCommand(t, "", "favorite", "list", "-m", "bob")
	require.NoError(t, err)
	assert.Contains(t, out, "No favorites for bob.")
}

func TestFavoriteAdd_UnknownStation(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	seedNetwork(t)

	_, err := executeCommand(t, "", "favorite", "add", "강남역", "판교역", "-m", "alice")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
