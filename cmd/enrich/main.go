// Command enrich derives temporal and event characteristics for a parsed
// archive CSV and writes the enriched dataset.
//
// Usage:
//
//	go run ./cmd/enrich -in 2015_ctf_data.csv
//	go run ./cmd/enrich -in data/ctf_data.csv -out data/ctf_data_enriched.csv -no-summary
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/ctf-archive-etl/internal/archive"
	"github.com/couchcryptid/ctf-archive-etl/internal/enrich"
	"github.com/couchcryptid/ctf-archive-etl/internal/report"
)

func main() {
	in := flag.String("in", "", "input CSV file (parsed archive data)")
	out := flag.String("out", "", "output CSV filename (default <input>_enriched.csv)")
	noSummary := flag.Bool("no-summary", false, "skip the summary report")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(1)
	}
	if *out == "" {
		*out = enrichedName(*in)
	}

	if code := run(*in, *out, *noSummary); code != 0 {
		os.Exit(code)
	}
}

// enrichedName derives the default output name: x.csv becomes x_enriched.csv.
func enrichedName(in string) string {
	ext := filepath.Ext(in)
	return strings.TrimSuffix(in, ext) + "_enriched" + ext
}

func run(in, out string, noSummary bool) int {
	fmt.Printf("*  Input:  %s\n", in)
	fmt.Printf("*  Output: %s\n", out)

	f, err := os.Open(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open input: %v\n", err)
		return 1
	}
	events, skipped, err := archive.ReadEvents(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read CSV: %v\n", err)
		return 1
	}
	for _, s := range skipped {
		fmt.Fprintf(os.Stderr, "warning: line %d skipped: %v\n", s.Line, s.Err)
	}
	if len(events) == 0 {
		fmt.Println("*  No events found.")
		return 1
	}

	engine := enrich.New()
	enriched := engine.EnrichAll(events)

	outFile, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: create output: %v\n", err)
		return 1
	}
	if err := archive.WriteEnriched(outFile, enriched); err != nil {
		outFile.Close()
		fmt.Fprintf(os.Stderr, "FATAL: write CSV: %v\n", err)
		return 1
	}
	if err := outFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: close output: %v\n", err)
		return 1
	}
	fmt.Printf("*  Saved %d enriched events to '%s'\n", len(enriched), out)

	if !noSummary {
		report.WriteEnrichmentSummary(os.Stdout, engine.Summary())
	}
	return 0
}
