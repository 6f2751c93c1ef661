// Package fetch turns listed remote objects into local files: it decides
// what is already present, then drains the remaining work through a
// bounded worker pool with per-task retry and atomic finalization.
package fetch

import (
	"github.com/viperdavethesnake/gathermedata/internal/listing"
)

// Status is the terminal state of one transfer task.
type Status int

const (
	// StatusDownloaded means the object was fetched and finalized.
	StatusDownloaded Status = iota

	// StatusSkipped means the object was already present locally.
	StatusSkipped

	// StatusFailed means all attempts were exhausted.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusDownloaded:
		return "downloaded"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Task is one unit of transfer work. Archive tasks materialize as a
// directory of extracted files; plain tasks as a single file.
type Task struct {
	// Object is the remote unit being fetched.
	Object listing.Object

	// LocalPath is the canonical destination: a file path for plain
	// objects, the extraction directory for archives. Derived
	// deterministically from the key, which is what makes
	// skip-by-existence resumption correct.
	LocalPath string

	// Archive marks thread zip bundles that are extracted on arrival.
	Archive bool
}

// Result is the single terminal report for one task.
type Result struct {
	Task Task

	Status Status

	// Attempts is how many fetch attempts were made (0 for skips).
	Attempts int

	// Err holds the last attempt's error when Status is StatusFailed.
	Err error
}
