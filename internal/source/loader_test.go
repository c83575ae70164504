package source_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trknhr/namesake/internal/source"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileLoader_PlainList(t *testing.T) {
	path := writeFile(t, "# first names\nJohn\n\n  Johnny \nBob\nJohn\n")

	entries, err := source.NewFileLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, []source.Entry{{Name: "John"}, {Name: "Johnny"}, {Name: "Bob"}}, entries)
	assert.False(t, source.HasWeights(entries))
}

func TestFileLoader_CountsBecomeWeights(t *testing.T) {
	path := writeFile(t, "Louise\t400\nJade;200\nAmbre\t100\n")

	entries, err := source.NewFileLoader(path).Load()
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Jade", entries[1].Name)
	assert.InDelta(t, 1.0, entries[0].Weight, 1e-9)
	assert.InDelta(t, 0.5, entries[1].Weight, 1e-9)
	assert.InDelta(t, 0.25, entries[2].Weight, 1e-9)
	assert.True(t, source.HasWeights(entries))
}

func TestFileLoader_PartialCountsAreIgnored(t *testing.T) {
	path := writeFile(t, "Louise\t400\nJade\n")

	entries, err := source.NewFileLoader(path).Load()
	require.NoError(t, err)
	assert.False(t, source.HasWeights(entries))
}

func TestFileLoader_InvalidCount(t *testing.T) {
	path := writeFile(t, "Louise\tmany\n")

	_, err := source.NewFileLoader(path).Load()
	assert.ErrorContains(t, err, "invalid count")
}

func TestFileLoader_GetCurrentMtime(t *testing.T) {
	path := writeFile(t, "John\n")
	loader := source.NewFileLoader(path)

	mtime, err := loader.GetCurrentMtime()
	require.NoError(t, err)
	stat, _ := os.Stat(path)
	assert.Equal(t, stat.ModTime().Unix(), mtime)
	assert.Equal(t, path, loader.Path())
	assert.Equal(t, "names", loader.Key())
}
