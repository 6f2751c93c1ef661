// Package summary reports what actually landed on disk after a run.
package summary

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Stats describes the destination tree.
type Stats struct {
	// Files is the number of regular files under the root.
	Files int

	// Bytes is their total size.
	Bytes int64
}

// Summarize walks the destination tree once and totals its contents.
// In-flight temporaries from interrupted runs are not counted. Unreadable
// entries are skipped rather than failing the whole walk; a missing root
// yields zero stats.
func Summarize(root string) (Stats, error) {
	var stats Stats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return nil
			}
			return filepath.SkipDir
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".partial") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		stats.Files++
		stats.Bytes += info.Size()
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	return stats, nil
}
