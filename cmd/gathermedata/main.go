package main

import (
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess     = 0
	ExitSetupError  = 1
	ExitInvalidArgs = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitInvalidArgs
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "govdocs", "safedocs", "unsafedocs":
		return runDataset(command, cmdArgs)
	case "scenario":
		return runScenario(cmdArgs)
	case "datasets":
		return runDatasets(cmdArgs)
	case "help", "-h", "--help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return ExitInvalidArgs
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: gathermedata <command> [options]

Commands:
  govdocs     Download the GovDocs1 corpus (~986K files in 1000 zip threads)
  safedocs    Download the SAFEDOCS corpus (~8M PDFs from Common Crawl)
  unsafedocs  Download the UNSAFE-DOCS corpus (~5.3M files)
  scenario    Download a forensic scenario by ID
  datasets    List datasets, tiers, and scenarios

Run 'gathermedata <command> -h' for command-specific help.

Re-running the same command is safe: files already on disk are skipped,
so an interrupted download resumes where it left off.`)
}
