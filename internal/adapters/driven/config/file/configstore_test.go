package file

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_HomeEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "metro-home")
	t.Setenv(HomeEnv, dir)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDefaultDir_FallsBackToHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}
	t.Setenv(HomeEnv, "")

	dir, err := DefaultDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".metro"), dir)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("storage.backend", "sqlite"))
	require.NoError(t, store.Set("fare.base_fare", 1250))
	require.NoError(t, store.Set("path.cache_enabled", true))
	require.NoError(t, store.Set("tags", []string{"a", "b"}))

	assert.Equal(t, "sqlite", store.GetString("storage.backend"))
	assert.Equal(t, 1250, store.GetInt("fare.base_fare"))
	assert.True(t, store.GetBool("path.cache_enabled"))
	assert.Equal(t, []string{"a", "b"}, store.GetStringSlice("tags"))

	assert.Empty(t, store.GetString("fare.base_fare"))
	assert.Zero(t, store.GetInt("storage.backend"))
	assert.False(t, store.GetBool("missing"))
	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_PersistenceAcrossInstances(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("fare.unit_fare", 100))
	require.NoError(t, store.Set("path.cache_ttl", "5m0s"))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	// TOML integers come back as int64.
	val, ok := reopened.Get("fare.unit_fare")
	require.True(t, ok)
	assert.Equal(t, int64(100), val)
	assert.Equal(t, 100, reopened.GetInt("fare.unit_fare"))
	assert.Equal(t, "5m0s", reopened.GetString("path.cache_ttl"))
}

func TestConfigStore_Load_FlattensNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[fare]
base_fare = 1350
unit_fare = 150

[storage]
backend = "memory"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 1350, store.GetInt("fare.base_fare"))
	assert.Equal(t, 150, store.GetInt("fare.unit_fare"))
	assert.Equal(t, "memory", store.GetString("storage.backend"))
}

func TestConfigStore_Load_NonExistentAndEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Load())

	require.NoError(t, os.WriteFile(store.Path(), nil, 0600))
	require.NoError(t, store.Load())
	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not [valid toml"), 0600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on windows")
	}
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("fare.base_fare", 1250+i)
		}()
		go func() {
			defer wg.Done()
			_ = store.GetInt("fare.base_fare")
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, store.GetInt("fare.base_fare"), 1250)
}

func TestConfigStore_Watch_ReloadsOnExternalEdit(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("fare.base_fare", 1250))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- store.Watch(ctx, func() {
			select {
			case changed <- struct{}{}:
			default:
			}
		})
	}()

	// The watcher may not be registered yet; keep editing until it reports.
	edited := false
	for attempt := 0; attempt < 50 && !edited; attempt++ {
		require.NoError(t, os.WriteFile(store.Path(), []byte("[fare]\nbase_fare = 1400\n"), 0600))
		select {
		case <-changed:
			edited = true
		case <-time.After(100 * time.Millisecond):
		}
	}
	require.True(t, edited, "watcher never reported the edit")
	assert.Equal(t, 1400, store.GetInt("fare.base_fare"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestConfigStore_Watch_MissingDirectory(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(filepath.Dir(store.Path())))

	err = store.Watch(context.Background(), nil)

	assert.Error(t, err)
}
