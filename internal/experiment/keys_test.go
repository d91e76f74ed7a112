package experiment

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWordKeys(t *testing.T) {
	_, err := NewWordKeys(nil)
	assert.Error(t, err)

	words := []string{"lantern", "willow"}
	keys, err := NewWordKeys(words)
	require.NoError(t, err)
	for range 20 {
		assert.True(t, slices.Contains(words, keys()))
	}
}

func TestLoadWordList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("# credit words\nlantern\n\n  willow \n"), 0o644))

	words, err := LoadWordList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"lantern", "willow"}, words)

	_, err = LoadWordList(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
