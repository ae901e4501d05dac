// Command parse converts one year of raw CTFtime listing data into the
// standard archive CSV. The input is the tab-separated text captured from the
// archive pages, one event per line.
//
// Usage:
//
//	go run ./cmd/parse -in 2015_raw.txt -year 2015
//	go run ./cmd/parse -in 2015_raw.txt -year 2015 -out data/2015_ctf_data.csv -no-summary
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/ctf-archive-etl/internal/archive"
	"github.com/couchcryptid/ctf-archive-etl/internal/report"
)

func main() {
	in := flag.String("in", "", "input .txt file (tab-separated listing data)")
	year := flag.Int("year", 0, "listing year of the events")
	out := flag.String("out", "", "output CSV filename (default <year>_ctf_data.csv)")
	noSummary := flag.Bool("no-summary", false, "skip the summary report")
	flag.Parse()

	if *in == "" || *year == 0 {
		flag.Usage()
		os.Exit(1)
	}
	if *out == "" {
		*out = fmt.Sprintf("%d_ctf_data.csv", *year)
	}

	if code := run(*in, *year, *out, *noSummary); code != 0 {
		os.Exit(code)
	}
}

func run(in string, year int, out string, noSummary bool) int {
	fmt.Printf("*  Parsing CTFtime data for %d\n", year)
	fmt.Printf("*  Input:  %s\n", in)
	fmt.Printf("*  Output: %s\n", out)

	f, err := os.Open(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open input: %v\n", err)
		return 1
	}
	defer f.Close()

	events, err := archive.ReadListing(f, year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse listing: %v\n", err)
		return 1
	}
	if len(events) == 0 {
		fmt.Println("*  No events found in input file.")
		return 1
	}

	outFile, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: create output: %v\n", err)
		return 1
	}
	if err := archive.WriteEvents(outFile, events); err != nil {
		outFile.Close()
		fmt.Fprintf(os.Stderr, "FATAL: write CSV: %v\n", err)
		return 1
	}
	if err := outFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: close output: %v\n", err)
		return 1
	}
	fmt.Printf("*  Saved %d events to '%s'\n", len(events), out)

	if !noSummary {
		report.WriteListingSummary(os.Stdout, year, events)
	}
	return 0
}
