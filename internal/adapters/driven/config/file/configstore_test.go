package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.toml")

	store, err := NewConfigStore(path)

	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDefaultPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	path, err := DefaultPath()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".stencil", "config.toml"), path)
}

func TestConfigStore_SetPersistsNestedTables(t *testing.T) {
	store := newStore(t)

	require.NoError(t, store.Set("host.url", "http://localhost:7373"))
	require.NoError(t, store.Set("host.timeout", 15))
	require.NoError(t, store.Set("log.verbose", true))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "[host]")
	assert.Contains(t, content, "url = 'http://localhost:7373'")
	assert.Contains(t, content, "[log]")
	assert.NotContains(t, content, "'host.url'")
}

func TestConfigStore_Reload(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("host.timeout", 15))
	require.NoError(t, store.Set("content.id", "main"))
	require.NoError(t, store.Set("log.verbose", true))

	reloaded, err := NewConfigStore(store.Path())
	require.NoError(t, err)

	assert.Equal(t, 15, reloaded.GetInt("host.timeout"))
	assert.Equal(t, "main", reloaded.GetString("content.id"))
	assert.True(t, reloaded.GetBool("log.verbose"))
}

func TestConfigStore_LoadHandWrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[host]
url = "https://hub.example.com"
timeout = 5

[typeset]
source = "/static/MathJax.js"
fonts = ["STIX", "TeX"]

[watch]
interval = 250
`), 0o600))

	store, err := NewConfigStore(path)
	require.NoError(t, err)

	assert.Equal(t, "https://hub.example.com", store.GetString("host.url"))
	assert.Equal(t, 5, store.GetInt("host.timeout"))
	assert.Equal(t, "/static/MathJax.js", store.GetString("typeset.source"))
	assert.Equal(t, []string{"STIX", "TeX"}, store.GetStringSlice("typeset.fonts"))
	assert.Equal(t, 250, store.GetInt("watch.interval"))
}

func TestConfigStore_TypeMismatchReturnsZero(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set("content.id", 12))

	assert.Empty(t, store.GetString("content.id"))
	assert.False(t, store.GetBool("content.id"))
	assert.Nil(t, store.GetStringSlice("content.id"))
	assert.Zero(t, store.GetInt("missing"))
}

func TestConfigStore_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[host\nurl ="), 0o600))

	_, err := NewConfigStore(path)
	assert.Error(t, err)
}

func TestFlattenMap(t *testing.T) {
	flat := flattenMap(map[string]any{
		"host": map[string]any{"url": "x", "tls": map[string]any{"verify": true}},
		"top":  1,
	}, "")

	assert.Equal(t, map[string]any{
		"host.url":        "x",
		"host.tls.verify": true,
		"top":             1,
	}, flat)
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"host.url":     "x",
		"host.timeout": 3,
		"plain":        true,
	})

	assert.Equal(t, map[string]any{
		"host":  map[string]any{"url": "x", "timeout": 3},
		"plain": true,
	}, nested)
}

func TestNestMap_ValueWinsOverTable(t *testing.T) {
	nested := nestMap(map[string]any{
		"host":     "value",
		"host.url": "x",
	})

	assert.Equal(t, map[string]any{"host": "value"}, nested)
}
