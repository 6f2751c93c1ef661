package summary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeCountsTree(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "001"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "001", "a.doc"), []byte("12345"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "001", "b.pdf"), []byte("123"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "c.pdf"), []byte("12"), 0o644))

	stats, err := Summarize(root)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Files)
	assert.Equal(t, int64(10), stats.Bytes)
}

func TestSummarizeSkipsPartials(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.pdf"), []byte("done"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.pdf.partial"), []byte("half"), 0o644))

	stats, err := Summarize(root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Files)
	assert.Equal(t, int64(4), stats.Bytes)
}

func TestSummarizeMissingRoot(t *testing.T) {
	stats, err := Summarize(filepath.Join(t.TempDir(), "never-created"))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Files)
	assert.Equal(t, int64(0), stats.Bytes)
}

func TestSummarizeEmptyRoot(t *testing.T) {
	stats, err := Summarize(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Files)
}
