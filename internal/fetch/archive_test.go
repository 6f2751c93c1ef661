package fetch

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gmhttp "github.com/viperdavethesnake/gathermedata/internal/http"
	"github.com/viperdavethesnake/gathermedata/internal/listing"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func archiveServer(t *testing.T, archives map[string][]byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, ok := archives[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	t.Cleanup(server.Close)
	return server
}

func archiveTask(root, key string) Task {
	return Task{
		Object:    listing.Object{Key: key},
		LocalPath: LocalPath(PartitionOptions{Root: root, Archive: true}, key),
		Archive:   true,
	}
}

func newArchiveClient() *gmhttp.Client {
	return gmhttp.NewClient(gmhttp.Options{Timeout: 5 * time.Second})
}

func TestArchiveFetcherExtracts(t *testing.T) {
	root := t.TempDir()
	zipData := buildZip(t, map[string]string{
		"000100.doc": "doc one",
		"000101.pdf": "pdf two",
	})
	server := archiveServer(t, map[string][]byte{"/001.zip": zipData})

	fetcher := NewArchiveFetcher(newArchiveClient(), server.URL)
	task := archiveTask(root, "001.zip")
	require.NoError(t, fetcher.Fetch(context.Background(), task))

	data, err := os.ReadFile(filepath.Join(task.LocalPath, "000100.doc"))
	require.NoError(t, err)
	assert.Equal(t, "doc one", string(data))

	data, err = os.ReadFile(filepath.Join(task.LocalPath, "000101.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "pdf two", string(data))

	// The finished directory satisfies the existence filter.
	_, toSkip := Partition([]listing.Object{{Key: "001.zip"}}, PartitionOptions{Root: root, Archive: true})
	assert.Len(t, toSkip, 1)
}

func TestArchiveFetcherCleansUpTemporaries(t *testing.T) {
	root := t.TempDir()
	zipData := buildZip(t, map[string]string{"a.txt": "x"})
	server := archiveServer(t, map[string][]byte{"/002.zip": zipData})

	fetcher := NewArchiveFetcher(newArchiveClient(), server.URL)
	task := archiveTask(root, "002.zip")
	require.NoError(t, fetcher.Fetch(context.Background(), task))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "002", entries[0].Name())
}

func TestArchiveFetcherCorruptArchive(t *testing.T) {
	root := t.TempDir()
	server := archiveServer(t, map[string][]byte{"/003.zip": []byte("this is not a zip file")})

	fetcher := NewArchiveFetcher(newArchiveClient(), server.URL)
	task := archiveTask(root, "003.zip")
	require.Error(t, fetcher.Fetch(context.Background(), task))

	// No destination dir, no temporaries: the next run retries cleanly.
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestArchiveFetcherNotFound(t *testing.T) {
	root := t.TempDir()
	server := archiveServer(t, nil)

	fetcher := NewArchiveFetcher(newArchiveClient(), server.URL)
	task := archiveTask(root, "004.zip")
	err := fetcher.Fetch(context.Background(), task)
	require.Error(t, err)
	assert.ErrorIs(t, err, gmhttp.ErrNotFound)

	entries, readErr := os.ReadDir(root)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestArchiveFetcherRejectsEscapingEntries(t *testing.T) {
	root := t.TempDir()
	zipData := buildZip(t, map[string]string{"../evil.txt": "nope"})
	server := archiveServer(t, map[string][]byte{"/005.zip": zipData})

	fetcher := NewArchiveFetcher(newArchiveClient(), server.URL)
	task := archiveTask(root, "005.zip")
	require.Error(t, fetcher.Fetch(context.Background(), task))

	_, err := os.Stat(filepath.Join(filepath.Dir(root), "evil.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestArchiveFetcherReplacesStaleExtractionDir(t *testing.T) {
	root := t.TempDir()
	zipData := buildZip(t, map[string]string{"a.txt": "fresh"})
	server := archiveServer(t, map[string][]byte{"/006.zip": zipData})

	// Simulate a crashed prior run that left a stale extraction dir.
	stale := filepath.Join(root, "006"+extractingSuffix)
	require.NoError(t, os.MkdirAll(stale, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(stale, "old.txt"), []byte("stale"), 0o644))

	fetcher := NewArchiveFetcher(newArchiveClient(), server.URL)
	task := archiveTask(root, "006.zip")
	require.NoError(t, fetcher.Fetch(context.Background(), task))

	_, err := os.Stat(filepath.Join(task.LocalPath, "old.txt"))
	assert.True(t, os.IsNotExist(err), "stale extraction contents must not survive")

	data, err := os.ReadFile(filepath.Join(task.LocalPath, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
}
