package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/viperdavethesnake/gathermedata/internal/catalog"
	"github.com/viperdavethesnake/gathermedata/internal/config"
	"github.com/viperdavethesnake/gathermedata/internal/fetch"
	gmhttp "github.com/viperdavethesnake/gathermedata/internal/http"
	"github.com/viperdavethesnake/gathermedata/internal/listing"
	"github.com/viperdavethesnake/gathermedata/internal/progress"
	"github.com/viperdavethesnake/gathermedata/internal/summary"
)

// syncRun bundles everything the shared sync engine needs for one run.
type syncRun struct {
	lister    listing.Lister
	fetcher   fetch.Fetcher
	partition fetch.PartitionOptions
	limit     int
	unit      string
	cfg       config.Config
}

func runDataset(name string, args []string) int {
	ds, err := catalog.Lookup(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitSetupError
	}

	fs := flag.NewFlagSet(name, flag.ExitOnError)
	tier := fs.String("tier", "", "Download tier (use -list to see options)")
	limit := fs.Int("limit", 0, "Custom unit limit (instead of a tier)")
	list := fs.Bool("list", false, "List available tiers and exit")
	path := fs.String("path", "", "Destination root (default: platform-specific)")
	parallel := fs.Int("parallel", 0, "Number of parallel downloads (default: 4)")
	configFile := fs.String("config", "", "Path to a YAML config file")

	var threads, start *int
	if ds.Kind == catalog.KindThreads {
		threads = fs.Int("threads", 0, "Number of threads to download (custom range)")
		start = fs.Int("start", 0, "Starting thread number (0-999)")
	}

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gathermedata %s [options]\n\n%s.\n\nOptions:\n", name, ds.Description)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	if *list {
		printTiers(ds)
		return ExitSuccess
	}

	cfg, code := loadConfig(*configFile, *path, *parallel)
	if code != ExitSuccess {
		return code
	}

	bound, code := resolveBound(ds, *tier, *limit, threads)
	if code != ExitSuccess {
		return code
	}

	ctx, cancel := interruptibleContext()
	defer cancel()

	root := config.DestRoot(cfg.Path, ds.Subdir)

	run := syncRun{limit: bound, cfg: cfg}
	switch ds.Kind {
	case catalog.KindThreads:
		startAt := 0
		if start != nil {
			startAt = *start
		}
		count := bound
		if startAt+count > catalog.ThreadCount {
			count = catalog.ThreadCount - startAt
			fmt.Fprintf(os.Stderr, "[gathermedata] Adjusting threads to %d (max available)\n", count)
		}
		lister, err := listing.NewThreadLister(startAt, count)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitSetupError
		}
		run.lister = lister
		run.fetcher = fetch.NewArchiveFetcher(
			gmhttp.NewClient(gmhttp.Options{Timeout: cfg.HTTPTimeout}),
			ds.ArchiveURL,
		)
		run.partition = fetch.PartitionOptions{Root: root, Archive: true}
		run.limit = 0 // range already bounded
		run.unit = "thread"

	case catalog.KindObjects:
		client, err := listing.NewAnonymousClient(ctx, cfg.Region)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitSetupError
		}
		run.lister = listing.NewS3Lister(client, ds.Bucket, ds.Prefix)
		run.fetcher = fetch.NewObjectFetcher(client, ds.Bucket)
		run.partition = fetch.PartitionOptions{Root: root, Prefix: ds.Prefix}
		run.unit = "file"
	}

	fmt.Fprintf(os.Stderr, "[gathermedata] Dataset: %s\n", ds.Name)
	fmt.Fprintf(os.Stderr, "[gathermedata] Destination: %s\n", root)

	return runSync(ctx, run)
}

// resolveBound turns the tier/limit/threads flags into a unit bound.
// Exactly one selector must be given.
func resolveBound(ds catalog.Dataset, tierName string, limit int, threads *int) (int, int) {
	selectors := 0
	if tierName != "" {
		selectors++
	}
	if limit > 0 {
		selectors++
	}
	if threads != nil && *threads > 0 {
		selectors++
	}
	if selectors != 1 {
		fmt.Fprintln(os.Stderr, "Error: specify exactly one of -tier, -limit, or -threads")
		return 0, ExitInvalidArgs
	}

	if tierName != "" {
		tier, err := ds.Tier(tierName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			printTiers(ds)
			return 0, ExitSetupError
		}
		fmt.Fprintf(os.Stderr, "[gathermedata] Tier: %s (%s, %s)\n", tier.Name, tier.Size, tier.Description)
		return tier.Items, ExitSuccess
	}
	if limit > 0 {
		return limit, ExitSuccess
	}
	return *threads, ExitSuccess
}

// loadConfig layers defaults, an optional file, the environment, and the
// path/parallel flags.
func loadConfig(file, path string, parallel int) (config.Config, int) {
	cfg := config.Default()
	if file != "" {
		loaded, err := config.LoadFromFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return config.Config{}, ExitSetupError
		}
		cfg = loaded
	}
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return config.Config{}, ExitSetupError
	}
	cfg = cfg.Merge(config.Config{Path: path, Parallel: parallel})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return config.Config{}, ExitSetupError
	}
	return cfg, ExitSuccess
}

// interruptibleContext returns a context cancelled on SIGINT/SIGTERM.
func interruptibleContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[gathermedata] Received interrupt, shutting down...")
		cancel()
	}()

	return ctx, cancel
}

// runSync is the shared engine: list, partition, drain the pool, report.
// Per-task failures never abort the run; only an empty listing does.
func runSync(ctx context.Context, run syncRun) int {
	fmt.Fprintln(os.Stderr, "[gathermedata] Listing remote objects...")

	objects, err := run.lister.List(ctx, run.limit)
	if err != nil {
		var pe *listing.PartialError
		if errors.As(err, &pe) && len(objects) > 0 {
			fmt.Fprintf(os.Stderr, "[gathermedata] Warning: %v; continuing with partial listing\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitSetupError
		}
	}
	if len(objects) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no objects found to download")
		return ExitSetupError
	}

	fmt.Fprintf(os.Stderr, "[gathermedata] Found %d %ss\n", len(objects), run.unit)

	toFetch, toSkip := fetch.Partition(objects, run.partition)

	reporter := progress.NewReporter(progress.Options{
		Total: len(objects),
		Unit:  run.unit,
	})
	reporter.Start()

	for _, task := range toSkip {
		reporter.Observe(fetch.Result{Task: task, Status: fetch.StatusSkipped})
	}

	pool := fetch.NewPool(run.fetcher, fetch.Options{
		Workers:    run.cfg.Parallel,
		Attempts:   run.cfg.Retry.Attempts,
		RetryDelay: run.cfg.Retry.Delay,
	})

	var failures []fetch.Result
	for result := range pool.Run(ctx, toFetch) {
		reporter.Observe(result)
		if result.Status == fetch.StatusFailed {
			failures = append(failures, result)
		}
	}

	reporter.Stop()
	printSummary(reporter, run.partition.Root, failures)

	return ExitSuccess
}

func printTiers(ds catalog.Dataset) {
	fmt.Printf("\nTiers for %s:\n", ds.Name)
	fmt.Printf("%-10s | %-10s | %-12s | %s\n", "Tier", "Units", "Size", "Description")
	fmt.Println("------------------------------------------------------------------")
	for _, t := range ds.Tiers {
		fmt.Printf("%-10s | %-10d | %-12s | %s\n", t.Name, t.Items, t.Size, t.Description)
	}
	fmt.Println()
}

func printSummary(reporter *progress.Reporter, root string, failures []fetch.Result) {
	snap := reporter.Snapshot()
	stats, err := summary.Summarize(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[gathermedata] Warning: summarize destination: %v\n", err)
	}

	fmt.Println()
	fmt.Println("============================================================")
	fmt.Println("DOWNLOAD SUMMARY")
	fmt.Println("============================================================")
	fmt.Printf("Downloaded: %d\n", snap.Downloaded)
	fmt.Printf("Skipped:    %d (already present)\n", snap.Skipped)
	fmt.Printf("Failed:     %d\n", snap.Failed)
	fmt.Printf("On disk:    %d files, %s\n", stats.Files, progress.FormatBytes(stats.Bytes))
	fmt.Printf("Location:   %s\n", absPath(root))
	fmt.Printf("Elapsed:    %s\n", progress.FormatDuration(reporter.Elapsed()))
	fmt.Println("============================================================")

	if len(failures) > 0 {
		fmt.Println("\nFailed objects (re-run the same command to retry):")
		for _, f := range failures {
			fmt.Printf("  %s (%d attempts): %v\n", f.Task.Object.Key, f.Attempts, f.Err)
		}
	}
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
