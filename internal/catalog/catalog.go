// Package catalog holds the static registry of downloadable datasets and
// their tiers. The tables are fixed at compile time; everything here is a
// pure lookup.
package catalog

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrUnknownDataset  = errors.New("catalog: unknown dataset")
	ErrUnknownTier     = errors.New("catalog: unknown tier")
	ErrUnknownScenario = errors.New("catalog: unknown scenario")
)

// Kind describes how a dataset's remote objects are addressed.
type Kind int

const (
	// KindObjects is a flat key listing on an S3-compatible store.
	KindObjects Kind = iota

	// KindThreads is a fixed range of numbered zip archives on an HTTP
	// origin (000.zip through 999.zip).
	KindThreads
)

// ThreadCount is the number of archive threads in a thread-indexed corpus.
const ThreadCount = 1000

// Tier is a named preset bounding how many remote units to fetch.
type Tier struct {
	// Name is the unique tier key (e.g. "sample").
	Name string

	// Items is the unit bound: files for object datasets, archive
	// threads for thread datasets.
	Items int

	// Size is the approximate on-disk size, for display only.
	Size string

	// Description is a one-line summary for help output.
	Description string
}

// Dataset describes one downloadable corpus family.
type Dataset struct {
	// Name is the unique dataset key and CLI subcommand.
	Name string

	// Description is a one-line summary for help output.
	Description string

	// Kind selects the listing style.
	Kind Kind

	// Bucket and Prefix locate object datasets on the S3 store.
	Bucket string
	Prefix string

	// ArchiveURL is the HTTP base URL for thread datasets.
	ArchiveURL string

	// Subdir is the directory name appended to the destination root.
	Subdir string

	// Tiers lists the available presets, smallest first.
	Tiers []Tier
}

// Scenario is a single forensic scenario stored under a dedicated S3
// prefix. Scenarios have no tiers; they are fetched whole.
type Scenario struct {
	ID          string
	Name        string
	Description string
	Size        string
	Files       int
}

var datasets = []Dataset{
	{
		Name:        "govdocs",
		Description: "GovDocs1 corpus, ~986K real government files in 1000 zip threads",
		Kind:        KindThreads,
		ArchiveURL:  "https://downloads.digitalcorpora.org/corpora/files/govdocs1/zipfiles/",
		Subdir:      "GovDocs1",
		Tiers: []Tier{
			{"tiny", 1, "~540 MB", "Minimal test set"},
			{"sample", 10, "~5.4 GB", "Good for development/testing"},
			{"small", 50, "~27 GB", "Substantial test dataset"},
			{"medium", 100, "~54 GB", "Large representative sample"},
			{"large", 250, "~135 GB", "Quarter of full dataset"},
			{"xlarge", 500, "~270 GB", "Half of full dataset"},
			{"complete", 1000, "~540 GB", "Complete GovDocs1 corpus"},
		},
	},
	{
		Name:        "safedocs",
		Description: "SAFEDOCS corpus, ~8M PDFs from Common Crawl",
		Kind:        KindObjects,
		Bucket:      "digitalcorpora",
		Prefix:      "corpora/files/CC-MAIN-2021-31-PDF-UNTRUNCATED/",
		Subdir:      "SAFEDOCS",
		Tiers: []Tier{
			{"tiny", 1000, "~100 MB", "Minimal test set"},
			{"sample", 10000, "~1 GB", "Good for development/testing"},
			{"small", 50000, "~5 GB", "Substantial test dataset"},
			{"medium", 100000, "~10 GB", "Large representative sample"},
			{"large", 500000, "~50 GB", "Large dataset"},
			{"xlarge", 1000000, "~100 GB", "Million PDF sample"},
			{"xxlarge", 2000000, "~200 GB", "Two million PDFs"},
			{"complete", 8000000, "~800 GB", "Complete SAFEDOCS corpus"},
		},
	},
	{
		Name:        "unsafedocs",
		Description: "UNSAFE-DOCS corpus, ~5.3M files flagged unsafe by Common Crawl",
		Kind:        KindObjects,
		Bucket:      "digitalcorpora",
		Prefix:      "corpora/files/CC-MAIN-2021-31-UNSAFE/",
		Subdir:      "UNSAFE-DOCS",
		Tiers: []Tier{
			{"tiny", 1000, "~120 MB", "Minimal test set"},
			{"sample", 10000, "~1.2 GB", "Good for development/testing"},
			{"small", 50000, "~6 GB", "Substantial test dataset"},
			{"medium", 100000, "~12 GB", "Large representative sample"},
			{"large", 500000, "~60 GB", "Large dataset"},
			{"xlarge", 1000000, "~120 GB", "Million file sample"},
			{"complete", 5300000, "~640 GB", "Complete UNSAFE-DOCS corpus"},
		},
	},
}

var scenarios = []Scenario{
	{"2018-lonewolf", "2018 Lone Wolf Scenario", "Laptop seizure of fictional person planning mass shooting", "~79 GB", 19},
	{"2019-narcos", "2019 Narcos", "Passengers intercepted by customs for illegal activity", "~153 GB", 16},
	{"2019-owl", "2019 Owl", "Illegal trade of owls scenario", "~223 GB", 29},
	{"2019-tuck", "2019 Tuck", "Person attempting to join terrorist organization", "~100 GB", 10},
	{"2012-ngdc", "2012 National Gallery DC", "Fictional attack on National Gallery DC", "~112 GB", 161},
	{"2009-m57-patents", "2009 M57 Patents", "Complex scenario with multiple drives and actors", "~150 GB", 50},
	{"2008-nitroba", "2008 Nitroba University", "Network forensics harassment scenario", "~25 GB", 15},
}

// ScenarioBucket is the S3 bucket holding all forensic scenarios.
const ScenarioBucket = "digitalcorpora"

// Datasets returns all registered datasets in display order.
func Datasets() []Dataset {
	return datasets
}

// Lookup returns the dataset with the given name.
func Lookup(name string) (Dataset, error) {
	for _, d := range datasets {
		if d.Name == name {
			return d, nil
		}
	}
	return Dataset{}, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
}

// Tier returns the named tier of the dataset.
func (d Dataset) Tier(name string) (Tier, error) {
	for _, t := range d.Tiers {
		if t.Name == name {
			return t, nil
		}
	}
	return Tier{}, fmt.Errorf("%w: %q (dataset %s)", ErrUnknownTier, name, d.Name)
}

// Scenarios returns all registered forensic scenarios in display order.
func Scenarios() []Scenario {
	return scenarios
}

// LookupScenario returns the scenario with the given ID.
func LookupScenario(id string) (Scenario, error) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, id)
}

// Prefix returns the S3 prefix holding the scenario's files.
func (s Scenario) Prefix() string {
	return "corpora/scenarios/" + s.ID + "/"
}
