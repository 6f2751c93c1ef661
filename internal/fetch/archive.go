package fetch

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gmhttp "github.com/viperdavethesnake/gathermedata/internal/http"
)

// extractingSuffix marks in-progress extraction directories. The
// canonical directory only appears via rename after a full extraction, so
// a crash mid-extract never leaves a directory the existence filter would
// trust.
const extractingSuffix = ".extracting"

// ArchiveFetcher downloads thread zip bundles from an HTTP origin and
// extracts them into per-thread directories.
type ArchiveFetcher struct {
	client  *gmhttp.Client
	baseURL string
}

// NewArchiveFetcher creates a fetcher for archives under baseURL.
func NewArchiveFetcher(client *gmhttp.Client, baseURL string) *ArchiveFetcher {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &ArchiveFetcher{client: client, baseURL: baseURL}
}

// Fetch downloads the zip, extracts it next to the destination, and
// renames the extraction directory into place. A corrupt archive counts
// as a failed attempt; all temporaries are removed before returning.
func (f *ArchiveFetcher) Fetch(ctx context.Context, task Task) error {
	if err := os.MkdirAll(filepath.Dir(task.LocalPath), 0o755); err != nil {
		return fmt.Errorf("create destination dir: %w", err)
	}

	tmpZip := task.LocalPath + ".zip" + partialSuffix

	body, err := f.client.Get(ctx, f.baseURL+task.Object.Key)
	if err != nil {
		return fmt.Errorf("get archive %s: %w", task.Object.Key, err)
	}
	err = writeTemp(tmpZip, body)
	body.Close()
	if err != nil {
		return fmt.Errorf("write archive %s: %w", task.Object.Key, err)
	}

	tmpDir := task.LocalPath + extractingSuffix
	// A crashed prior run may have left a stale extraction dir.
	os.RemoveAll(tmpDir)

	if err := extractZip(tmpZip, tmpDir); err != nil {
		os.RemoveAll(tmpDir)
		os.Remove(tmpZip)
		return fmt.Errorf("extract %s: %w", task.Object.Key, err)
	}
	os.Remove(tmpZip)

	if err := os.Rename(tmpDir, task.LocalPath); err != nil {
		os.RemoveAll(tmpDir)
		return fmt.Errorf("finalize %s: %w", task.Object.Key, err)
	}

	return nil
}

// extractZip unpacks the archive at zipPath into destDir.
func extractZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	for _, entry := range r.File {
		if err := extractEntry(entry, destDir); err != nil {
			return fmt.Errorf("entry %s: %w", entry.Name, err)
		}
	}

	return nil
}

func extractEntry(entry *zip.File, destDir string) error {
	// Reject entries that would escape the destination.
	path := filepath.Join(destDir, filepath.FromSlash(entry.Name))
	if !strings.HasPrefix(path, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal path")
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(path, 0o755)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	in, err := entry.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
