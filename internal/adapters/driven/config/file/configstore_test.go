package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

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

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[editor\ninvalid"), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("editor.invalid_score", "zero"))
	require.NoError(t, store.Set("editor.header_baseline", 3))

	assert.Equal(t, "zero", store.GetString("editor.invalid_score"))
	assert.Equal(t, 3, store.GetInt("editor.header_baseline"))

	// Wrong types and missing keys return zero values.
	assert.Equal(t, "", store.GetString("editor.header_baseline"))
	assert.Equal(t, 0, store.GetInt("editor.invalid_score"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_SaveReload_NestsTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("editor.invalid_score", "zero"))
	require.NoError(t, store.Set("editor.header_baseline", 2))
	require.NoError(t, store.Set("rubric.max_score", 10))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[editor]")
	assert.Contains(t, string(data), "[rubric]")

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "zero", reloaded.GetString("editor.invalid_score"))
	assert.Equal(t, 2, reloaded.GetInt("editor.header_baseline"))
	assert.Equal(t, 10, reloaded.GetInt("rubric.max_score"))
}

func TestConfigStore_Load_HandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[grading]\nscore_mode = \"integer\"\n\n[rubric]\nname_max_length = 40\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "integer", store.GetString("grading.score_mode"))
	assert.Equal(t, 40, store.GetInt("rubric.name_max_length"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("editor.invalid_score", "reject"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("rubric.max_score", n)
			_ = store.GetInt("rubric.max_score")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("rubric.max_score")
	assert.True(t, ok)
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"editor.invalid_score":   "zero",
		"editor.header_baseline": 2,
		"top":                    true,
	}

	nested := nestMap(flat)

	assert.Equal(t, map[string]any{
		"editor": map[string]any{"invalid_score": "zero", "header_baseline": 2},
		"top":    true,
	}, nested)
	assert.Equal(t, flat, flattenMap(nested, ""))
}
