package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

// createStations saves stations named after their IDs.
func createStations(t *testing.T, store *Store, ids ...domain.StationID) {
	t.Helper()
	ctx := context.Background()
	for _, id := range ids {
		require.NoError(t, store.StationStore().Save(ctx, domain.Station{ID: id, Name: string(id)}))
	}
}

func newLine(t *testing.T, id domain.LineID, name string, surcharge int) *domain.Line {
	t.Helper()
	line, err := domain.NewLine(id, name, "bg-green-600", surcharge)
	require.NoError(t, err)
	return line
}

// ==================== Store Creation Tests ====================

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "metro.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)

	version, err := store.schemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestNewStore_ReopenKeepsDataAndSkipsMigrations(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	createStations(t, store, "gangnam")
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	station, err := reopened.StationStore().Get(ctx, "gangnam")
	require.NoError(t, err)
	assert.Equal(t, "gangnam", station.Name)

	version, err := reopened.schemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

// ==================== Station Store Tests ====================

func TestStationStore_CRUD(t *testing.T) {
	store := setupTestStore(t)
	stations := store.StationStore()
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, stations.Save(ctx, domain.Station{
		ID: "st-1", Name: "강남역", CreatedAt: created, UpdatedAt: created,
	}))

	got, err := stations.Get(ctx, "st-1")
	require.NoError(t, err)
	assert.Equal(t, "강남역", got.Name)
	assert.True(t, created.Equal(got.CreatedAt))

	got.Name = "신강남역"
	got.UpdatedAt = created.Add(time.Hour)
	require.NoError(t, stations.Save(ctx, *got))

	byName, err := stations.GetByName(ctx, "신강남역")
	require.NoError(t, err)
	assert.Equal(t, domain.StationID("st-1"), byName.ID)
	assert.True(t, created.Equal(byName.CreatedAt), "created_at is kept on update")

	require.NoError(t, stations.Delete(ctx, "st-1"))
	_, err = stations.Get(ctx, "st-1")
	assert.ErrorIs(t, err, domain.ErrStationNotFound)
}

func TestStationStore_DuplicateName(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	createStations(t, store, "gangnam")

	err := store.StationStore().Save(ctx, domain.Station{ID: "other", Name: "gangnam"})

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestStationStore_ListOrderedByName(t *testing.T) {
	store := setupTestStore(t)
	createStations(t, store, "jamsil", "gangnam", "yeouido")

	stations, err := store.StationStore().List(context.Background())

	require.NoError(t, err)
	require.Len(t, stations, 3)
	assert.Equal(t, "gangnam", stations[0].Name)
	assert.Equal(t, "yeouido", stations[2].Name)
}

func TestStationStore_DeleteReferencedStation(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	createStations(t, store, "gangnam", "jamsil")
	line := newLine(t, "line-2", "2호선", 0)
	require.NoError(t, line.AddSection("gangnam", "jamsil", 10))
	require.NoError(t, store.LineStore().Save(ctx, line))

	err := store.StationStore().Delete(ctx, "gangnam")

	assert.ErrorIs(t, err, domain.ErrStationInUse)
}

// ==================== Line Store Tests ====================

func TestLineStore_RoundTripsChain(t *testing.T) {
	store := setupTestStore(t)
	lines := store.LineStore()
	ctx := context.Background()
	createStations(t, store, "gangnam", "gyodae", "jamsil", "yeouido")

	line := newLine(t, "line-2", "2호선", 300)
	require.NoError(t, line.AddSection("gangnam", "jamsil", 10))
	require.NoError(t, line.AddSection("jamsil", "yeouido", 5))
	require.NoError(t, line.AddSection("gangnam", "gyodae", 3))
	require.NoError(t, lines.Save(ctx, line))

	got, err := lines.Get(ctx, "line-2")
	require.NoError(t, err)
	assert.Equal(t, "2호선", got.Name)
	assert.Equal(t, "bg-green-600", got.Color)
	assert.Equal(t, 300, got.Surcharge)
	assert.Equal(t, line.Sections(), got.Sections())
	assert.Equal(t, []domain.StationID{"gangnam", "gyodae", "jamsil", "yeouido"}, got.Stations())
}

func TestLineStore_SaveReplacesSections(t *testing.T) {
	store := setupTestStore(t)
	lines := store.LineStore()
	ctx := context.Background()
	createStations(t, store, "gangnam", "jamsil", "yeouido")

	line := newLine(t, "line-2", "2호선", 0)
	require.NoError(t, line.AddSection("gangnam", "jamsil", 10))
	require.NoError(t, line.AddSection("jamsil", "yeouido", 5))
	require.NoError(t, lines.Save(ctx, line))

	require.NoError(t, line.DeleteStation("jamsil"))
	require.NoError(t, lines.Save(ctx, line))

	got, err := lines.Get(ctx, "line-2")
	require.NoError(t, err)
	assert.Equal(t, []domain.Section{
		{LineID: "line-2", UpStationID: "gangnam", DownStationID: "yeouido", Distance: 15},
	}, got.Sections())
}

func TestLineStore_SaveWithUnknownStationRollsBack(t *testing.T) {
	store := setupTestStore(t)
	lines := store.LineStore()
	ctx := context.Background()
	createStations(t, store, "gangnam", "jamsil")

	line := newLine(t, "line-2", "2호선", 0)
	require.NoError(t, line.AddSection("gangnam", "jamsil", 10))
	require.NoError(t, lines.Save(ctx, line))

	require.NoError(t, line.AddSection("jamsil", "ghost", 5))
	err := lines.Save(ctx, line)
	assert.ErrorIs(t, err, domain.ErrStationNotFound)

	got, err := lines.Get(ctx, "line-2")
	require.NoError(t, err)
	assert.Len(t, got.Sections(), 1, "failed save must not touch stored sections")
}

func TestLineStore_GetByNameAndNotFound(t *testing.T) {
	store := setupTestStore(t)
	lines := store.LineStore()
	ctx := context.Background()
	createStations(t, store, "gangnam", "jamsil")
	line := newLine(t, "line-2", "2호선", 0)
	require.NoError(t, line.AddSection("gangnam", "jamsil", 10))
	require.NoError(t, lines.Save(ctx, line))

	got, err := lines.GetByName(ctx, "2호선")
	require.NoError(t, err)
	assert.Equal(t, domain.LineID("line-2"), got.ID)

	_, err = lines.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrLineNotFound)
	_, err = lines.GetByName(ctx, "9호선")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLineStore_DuplicateName(t *testing.T) {
	store := setupTestStore(t)
	lines := store.LineStore()
	ctx := context.Background()
	require.NoError(t, lines.Save(ctx, newLine(t, "line-2", "2호선", 0)))

	err := lines.Save(ctx, newLine(t, "line-x", "2호선", 0))

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestLineStore_ListAndDelete(t *testing.T) {
	store := setupTestStore(t)
	lines := store.LineStore()
	ctx := context.Background()
	createStations(t, store, "gangnam", "jamsil", "yeouido")

	two := newLine(t, "line-2", "2호선", 0)
	require.NoError(t, two.AddSection("gangnam", "jamsil", 10))
	eight := newLine(t, "line-8", "8호선", 500)
	require.NoError(t, eight.AddSection("jamsil", "yeouido", 5))
	require.NoError(t, lines.Save(ctx, eight))
	require.NoError(t, lines.Save(ctx, two))

	all, err := lines.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2호선", all[0].Name)
	assert.Equal(t, []domain.StationID{"jamsil", "yeouido"}, all[1].Stations())

	require.NoError(t, lines.Delete(ctx, "line-2"))
	all, err = lines.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.LineID("line-8"), all[0].ID)

	// Sections cascade with the line, freeing the stations.
	assert.NoError(t, store.StationStore().Delete(ctx, "gangnam"))
}

func TestLineStore_ListEmpty(t *testing.T) {
	store := setupTestStore(t)

	all, err := store.LineStore().List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestLineStore_VersionSharedAcrossHandles(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	writer, err := NewStore(dir)
	require.NoError(t, err)
	defer writer.Close()
	reader, err := NewStore(dir)
	require.NoError(t, err)
	defer reader.Close()
	createStations(t, writer, "gangnam", "jamsil")

	start, err := reader.LineStore().Version(ctx)
	require.NoError(t, err)

	line := newLine(t, "line-2", "2호선", 0)
	require.NoError(t, line.AddSection("gangnam", "jamsil", 10))
	require.NoError(t, writer.LineStore().Save(ctx, line))
	saved, err := reader.LineStore().Version(ctx)
	require.NoError(t, err)
	assert.Greater(t, saved, start)

	// Deleting a missing line is not an edit.
	require.NoError(t, writer.LineStore().Delete(ctx, "line-9"))
	unchanged, err := reader.LineStore().Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, unchanged)

	require.NoError(t, writer.LineStore().Delete(ctx, "line-2"))
	deleted, err := reader.LineStore().Version(ctx)
	require.NoError(t, err)
	assert.Greater(t, deleted, saved)
}

// ==================== Favorite Store Tests ====================

func TestFavoriteStore_CRUD(t *testing.T) {
	store := setupTestStore(t)
	favorites := store.FavoriteStore()
	ctx := context.Background()
	createStations(t, store, "gangnam", "jamsil")
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, favorites.Save(ctx, domain.Favorite{
		ID: "fav-2", MemberID: "alice", SourceID: "jamsil", TargetID: "gangnam", CreatedAt: base.Add(time.Minute),
	}))
	require.NoError(t, favorites.Save(ctx, domain.Favorite{
		ID: "fav-1", MemberID: "alice", SourceID: "gangnam", TargetID: "jamsil", CreatedAt: base,
	}))
	require.NoError(t, favorites.Save(ctx, domain.Favorite{
		ID: "fav-3", MemberID: "bob", SourceID: "gangnam", TargetID: "jamsil", CreatedAt: base,
	}))

	got, err := favorites.Get(ctx, "fav-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.MemberID)
	assert.Equal(t, domain.StationID("jamsil"), got.TargetID)

	list, err := favorites.ListByMember(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "fav-1", list[0].ID)
	assert.Equal(t, "fav-2", list[1].ID)

	require.NoError(t, favorites.Delete(ctx, "fav-1"))
	_, err = favorites.Get(ctx, "fav-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFavoriteStore_UnknownStation(t *testing.T) {
	store := setupTestStore(t)
	createStations(t, store, "gangnam")

	err := store.FavoriteStore().Save(context.Background(), domain.Favorite{
		ID: "fav-1", MemberID: "alice", SourceID: "gangnam", TargetID: "ghost",
	})

	assert.ErrorIs(t, err, domain.ErrStationNotFound)
}

func TestFavoriteStore_DeleteByStation(t *testing.T) {
	store := setupTestStore(t)
	favorites := store.FavoriteStore()
	ctx := context.Background()
	createStations(t, store, "gangnam", "jamsil", "yeouido")

	require.NoError(t, favorites.Save(ctx, domain.Favorite{
		ID: "fav-1", MemberID: "alice", SourceID: "gangnam", TargetID: "jamsil",
	}))
	require.NoError(t, favorites.Save(ctx, domain.Favorite{
		ID: "fav-2", MemberID: "alice", SourceID: "yeouido", TargetID: "gangnam",
	}))
	require.NoError(t, favorites.Save(ctx, domain.Favorite{
		ID: "fav-3", MemberID: "alice", SourceID: "jamsil", TargetID: "yeouido",
	}))

	require.NoError(t, favorites.DeleteByStation(ctx, "gangnam"))

	list, err := favorites.ListByMember(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "fav-3", list[0].ID)
}
