package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cached_content.txt")
	c := New(path)

	_, ok := c.Load()
	assert.False(t, ok, "missing cache file should not load")

	err := c.Save("Inflation rose. Growth slowed.")
	require.NoError(t, err)

	content, ok := c.Load()
	assert.True(t, ok)
	assert.Equal(t, "Inflation rose. Growth slowed.", content)
}

func TestPageCacheEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cached_content.txt")
	c := New(path)

	require.NoError(t, c.Save(""))

	_, ok := c.Load()
	assert.False(t, ok, "empty cache file should force a refetch")
}

func TestPageCacheSaveReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cached_content.txt")
	c := New(path)

	require.NoError(t, c.Save("old content"))
	require.NoError(t, c.Save("new content"))

	content, ok := c.Load()
	assert.True(t, ok)
	assert.Equal(t, "new content", content)
}
