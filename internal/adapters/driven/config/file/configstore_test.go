package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestSetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("vector.provider", "qdrant"))
	require.NoError(t, store.Set("chunking.size", 800))
	require.NoError(t, store.Set("verbose", true))

	assert.Equal(t, "qdrant", store.GetString("vector.provider"))
	assert.Equal(t, 800, store.GetInt("chunking.size"))
	assert.True(t, store.GetBool("verbose"))
}

func TestGet_MissingKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("does.not.exist")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("does.not.exist"))
	assert.Equal(t, 0, store.GetInt("does.not.exist"))
	assert.False(t, store.GetBool("does.not.exist"))
	assert.Nil(t, store.GetStringSlice("does.not.exist"))
}

func TestGet_WrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("key", 42))
	assert.Equal(t, "", store.GetString("key"))
	assert.False(t, store.GetBool("key"))
}

func TestPersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.model", "gpt-4o-mini"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", reloaded.GetString("llm.model"))
}

func TestLoad_FlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := []byte("[embedding]\nprovider = \"ollama\"\nbatch_size = 32\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), content, 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "ollama", store.GetString("embedding.provider"))
	assert.Equal(t, 32, store.GetInt("embedding.batch_size"))
}

func TestGetStringSlice(t *testing.T) {
	dir := t.TempDir()
	content := []byte("watch_paths = [\"/docs\", \"/inbox\"]\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), content, 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"/docs", "/inbox"}, store.GetStringSlice("watch_paths"))
}
