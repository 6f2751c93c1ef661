package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/viperdavethesnake/gathermedata/internal/catalog"
	"github.com/viperdavethesnake/gathermedata/internal/config"
	"github.com/viperdavethesnake/gathermedata/internal/fetch"
	"github.com/viperdavethesnake/gathermedata/internal/listing"
)

func runScenario(args []string) int {
	fs := flag.NewFlagSet("scenario", flag.ExitOnError)
	list := fs.Bool("list", false, "List available scenarios and exit")
	path := fs.String("path", "", "Destination root (default: platform-specific)")
	parallel := fs.Int("parallel", 0, "Number of parallel downloads (default: 4)")
	configFile := fs.String("config", "", "Path to a YAML config file")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: gathermedata scenario [options] <scenario-id>

Download a complete forensic scenario (disk images, captures, memory dumps).

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	if *list {
		printScenarios()
		return ExitSuccess
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one scenario ID is required")
		fs.Usage()
		return ExitInvalidArgs
	}

	scenario, err := catalog.LookupScenario(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printScenarios()
		return ExitSetupError
	}

	cfg, code := loadConfig(*configFile, *path, *parallel)
	if code != ExitSuccess {
		return code
	}

	ctx, cancel := interruptibleContext()
	defer cancel()

	client, err := listing.NewAnonymousClient(ctx, cfg.Region)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitSetupError
	}

	root := filepath.Join(config.DestRoot(cfg.Path, "DigitalCorpora"), "scenarios", scenario.ID)

	fmt.Fprintf(os.Stderr, "[gathermedata] Scenario: %s (%s, %s)\n", scenario.Name, scenario.Size, scenario.Description)
	fmt.Fprintf(os.Stderr, "[gathermedata] Destination: %s\n", root)

	return runSync(ctx, syncRun{
		lister:    listing.NewS3Lister(client, catalog.ScenarioBucket, scenario.Prefix()),
		fetcher:   fetch.NewObjectFetcher(client, catalog.ScenarioBucket),
		partition: fetch.PartitionOptions{Root: root, Prefix: scenario.Prefix()},
		unit:      "file",
		cfg:       cfg,
	})
}

func printScenarios() {
	fmt.Println("\nAvailable forensic scenarios:")
	fmt.Printf("%-18s | %-28s | %-8s | %s\n", "ID", "Name", "Size", "Description")
	fmt.Println("--------------------------------------------------------------------------------")
	for _, s := range catalog.Scenarios() {
		fmt.Printf("%-18s | %-28s | %-8s | %s\n", s.ID, s.Name, s.Size, s.Description)
	}
	fmt.Println()
}
