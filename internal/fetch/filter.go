package fetch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/viperdavethesnake/gathermedata/internal/listing"
)

// PartitionOptions configures how remote objects map onto the local tree.
type PartitionOptions struct {
	// Root is the destination root directory.
	Root string

	// Prefix is stripped from object keys before joining to Root.
	Prefix string

	// Archive treats each object as a zip bundle whose key NNN.zip
	// extracts into directory NNN under Root.
	Archive bool
}

// LocalPath derives the canonical local path for a key. It is a pure
// function of its inputs: the same key always lands at the same path.
func LocalPath(opts PartitionOptions, key string) string {
	if opts.Archive {
		dir := strings.TrimSuffix(key, filepath.Ext(key))
		return filepath.Join(opts.Root, dir)
	}
	rel := strings.TrimPrefix(key, opts.Prefix)
	return filepath.Join(opts.Root, filepath.FromSlash(rel))
}

// Partition splits objects into tasks that need fetching and tasks whose
// destination already exists. Presence is the sole signal: a plain object
// is present when its file exists; an archive is present only when its
// extraction directory exists and is non-empty, so a run interrupted
// mid-extraction is fetched again rather than mis-resumed.
func Partition(objects []listing.Object, opts PartitionOptions) (toFetch, toSkip []Task) {
	for _, obj := range objects {
		task := Task{
			Object:    obj,
			LocalPath: LocalPath(opts, obj.Key),
			Archive:   opts.Archive,
		}
		if present(task) {
			toSkip = append(toSkip, task)
		} else {
			toFetch = append(toFetch, task)
		}
	}
	return toFetch, toSkip
}

func present(task Task) bool {
	if !task.Archive {
		_, err := os.Stat(task.LocalPath)
		return err == nil
	}

	entries, err := os.ReadDir(task.LocalPath)
	if err != nil {
		return false
	}
	return len(entries) > 0
}
