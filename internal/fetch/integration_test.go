//go:build integration

package fetch_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viperdavethesnake/gathermedata/internal/fetch"
	"github.com/viperdavethesnake/gathermedata/internal/listing"
	"github.com/viperdavethesnake/gathermedata/internal/testutils"
)

func TestSyncAgainstMinio(t *testing.T) {
	ctx := context.Background()
	const (
		bucket = "corpora-test"
		prefix = "corpora/files/TEST/"
	)

	env := testutils.StartMinioContainer(t, ctx, bucket)
	client, err := env.S3Client(ctx)
	require.NoError(t, err)

	seed := map[string][]byte{
		prefix + "0001.pdf":     []byte("first document"),
		prefix + "0002.pdf":     []byte("second document"),
		prefix + "sub/0003.pdf": []byte("nested document"),
	}
	testutils.SeedObjects(t, ctx, client, bucket, seed)
	// A key outside the prefix must never be listed.
	testutils.SeedObjects(t, ctx, client, bucket, map[string][]byte{
		"other/stray.pdf": []byte("stray"),
	})

	lister := listing.NewS3Lister(client, bucket, prefix)
	objects, err := lister.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, objects, len(seed))

	root := t.TempDir()
	opts := fetch.PartitionOptions{Root: root, Prefix: prefix}
	toFetch, toSkip := fetch.Partition(objects, opts)
	require.Len(t, toFetch, len(seed))
	require.Empty(t, toSkip)

	pool := fetch.NewPool(fetch.NewObjectFetcher(client, bucket), fetch.Options{
		Workers:    4,
		Attempts:   3,
		RetryDelay: 10 * time.Millisecond,
	})

	downloaded := 0
	for result := range pool.Run(ctx, toFetch) {
		require.Equal(t, fetch.StatusDownloaded, result.Status, result.Task.Object.Key)
		downloaded++
	}
	assert.Equal(t, len(seed), downloaded)

	for key, want := range seed {
		data, err := os.ReadFile(fetch.LocalPath(opts, key))
		require.NoError(t, err, key)
		assert.Equal(t, want, data, key)
	}

	// The same run again resolves entirely from the local tree.
	toFetch, toSkip = fetch.Partition(objects, opts)
	assert.Empty(t, toFetch)
	assert.Len(t, toSkip, len(seed))
}

func TestListingPaginationAgainstMinio(t *testing.T) {
	ctx := context.Background()
	const (
		bucket = "corpora-pages"
		prefix = "corpora/files/PAGES/"
	)

	env := testutils.StartMinioContainer(t, ctx, bucket)
	client, err := env.S3Client(ctx)
	require.NoError(t, err)

	seed := make(map[string][]byte, 1200)
	for i := 0; i < 1200; i++ {
		seed[fmt.Sprintf("%s%04d.pdf", prefix, i)] = []byte{byte(i)}
	}
	testutils.SeedObjects(t, ctx, client, bucket, seed)

	lister := listing.NewS3Lister(client, bucket, prefix)

	// More objects than one page holds.
	objects, err := lister.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, objects, 1200)

	// A bound below the page size cuts the listing short.
	objects, err = lister.List(ctx, 37)
	require.NoError(t, err)
	assert.Len(t, objects, 37)
}
