package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/viperdavethesnake/gathermedata/internal/fetch"
)

// Options configures the progress reporter.
type Options struct {
	// Total is the number of units (files or archive threads) this run
	// will account for, including skips.
	Total int

	// Unit names what is being counted (e.g. "file", "thread").
	Unit string

	// Output is where to write progress output.
	// Default: os.Stderr
	Output io.Writer

	// UpdateInterval is how often to update the progress display.
	// Default: 500ms
	UpdateInterval time.Duration
}

// Snapshot is a consistent view of the counters at one instant.
type Snapshot struct {
	Downloaded int
	Skipped    int
	Failed     int
	Total      int
}

// Completed returns how many units have reached a terminal state.
func (s Snapshot) Completed() int {
	return s.Downloaded + s.Skipped + s.Failed
}

// Percent returns completion as 0-100. A zero-total run is complete.
func (s Snapshot) Percent() float64 {
	if s.Total <= 0 {
		return 100
	}
	return float64(s.Completed()) / float64(s.Total) * 100
}

// Reporter maintains running transfer counts and periodically renders
// them. Observe is safe to call from any number of worker completions.
type Reporter struct {
	opts Options

	mu         sync.Mutex
	downloaded int
	skipped    int
	failed     int

	startTime time.Time
	stopCh    chan struct{}
	stopped   bool
}

// NewReporter creates a new progress reporter.
func NewReporter(opts Options) *Reporter {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.UpdateInterval == 0 {
		opts.UpdateInterval = 500 * time.Millisecond
	}
	if opts.Unit == "" {
		opts.Unit = "file"
	}

	return &Reporter{
		opts:   opts,
		stopCh: make(chan struct{}),
	}
}

// Observe records one terminal result.
func (r *Reporter) Observe(result fetch.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch result.Status {
	case fetch.StatusDownloaded:
		r.downloaded++
	case fetch.StatusSkipped:
		r.skipped++
	case fetch.StatusFailed:
		r.failed++
	}
}

// Snapshot returns the current counters.
func (r *Reporter) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		Downloaded: r.downloaded,
		Skipped:    r.skipped,
		Failed:     r.failed,
		Total:      r.opts.Total,
	}
}

// Start begins the periodic display loop.
func (r *Reporter) Start() {
	r.startTime = time.Now()
	go r.updateLoop()
}

// Stop halts the display loop and prints the final line.
func (r *Reporter) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.stopCh)
}

func (r *Reporter) updateLoop() {
	ticker := time.NewTicker(r.opts.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			r.printLine()
			fmt.Fprintln(r.opts.Output)
			return
		case <-ticker.C:
			r.printLine()
		}
	}
}

func (r *Reporter) printLine() {
	s := r.Snapshot()
	fmt.Fprintf(r.opts.Output, "\r[gathermedata] %.1f%% | %d/%d %ss | DL: %d Skip: %d Fail: %d    ",
		s.Percent(),
		s.Completed(),
		s.Total,
		r.opts.Unit,
		s.Downloaded,
		s.Skipped,
		s.Failed,
	)
}

// Elapsed returns how long the reporter has been running.
func (r *Reporter) Elapsed() time.Duration {
	if r.startTime.IsZero() {
		return 0
	}
	return time.Since(r.startTime)
}

// FormatBytes formats bytes as a human-readable string.
func FormatBytes(b int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case b >= TB:
		return fmt.Sprintf("%.2f TB", float64(b)/float64(TB))
	case b >= GB:
		return fmt.Sprintf("%.2f GB", float64(b)/float64(GB))
	case b >= MB:
		return fmt.Sprintf("%.2f MB", float64(b)/float64(MB))
	case b >= KB:
		return fmt.Sprintf("%.2f KB", float64(b)/float64(KB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// FormatDuration formats a duration as a human-readable string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
