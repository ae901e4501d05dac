// Command describe prints summary statistics for the archive datasets: row
// and column counts plus year, format, and location distributions. Files
// that do not exist are skipped, so it works at any stage of the workflow.
//
// Usage:
//
//	go run ./cmd/describe
//	go run ./cmd/describe -raw data/2015_ctf_data.csv -enriched data/2015_ctf_data_enriched.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/couchcryptid/ctf-archive-etl/internal/report"
)

func main() {
	raw := flag.String("raw", filepath.Join("data", "ctftime_archive_all.csv"), "parsed archive CSV")
	enriched := flag.String("enriched", filepath.Join("data", "ctftime_archive_all_enriched.csv"), "enriched archive CSV")
	flag.Parse()

	if code := run(*raw, *enriched); code != 0 {
		os.Exit(code)
	}
}

func run(rawPath, enrichedPath string) int {
	report.Banner(os.Stdout, "CTFtime Archive Dataset -- Summary Stats")
	fmt.Println()

	if fileExists(rawPath) {
		ds, err := loadDataset(rawPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load %s: %v\n", rawPath, err)
			return 1
		}
		report.WriteDescription(os.Stdout, ds)
		report.Divider(os.Stdout)
	}

	if fileExists(enrichedPath) {
		ds, err := loadDataset(enrichedPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load %s: %v\n", enrichedPath, err)
			return 1
		}
		report.WriteDescription(os.Stdout, ds)
	}
	return 0
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func loadDataset(path string) (report.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return report.Dataset{}, err
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return report.Dataset{}, err
	}
	if len(all) == 0 {
		return report.Dataset{Name: filepath.Base(path)}, nil
	}
	return report.Dataset{
		Name:    filepath.Base(path),
		Columns: all[0],
		Rows:    all[1:],
	}, nil
}
