package main

import (
	"flag"
	"fmt"

	"github.com/viperdavethesnake/gathermedata/internal/catalog"
)

func runDatasets(args []string) int {
	fs := flag.NewFlagSet("datasets", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	fmt.Println("\nAvailable datasets:")
	for _, ds := range catalog.Datasets() {
		fmt.Printf("\n  %s - %s\n", ds.Name, ds.Description)
		printTiers(ds)
	}

	printScenarios()
	return ExitSuccess
}
