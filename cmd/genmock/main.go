// Command genmock reads a raw CTFtime listing file and generates JSON
// fixtures for the pipeline test suites: the flat collector records published
// to the source topic, and the enriched events the pipeline should produce.
// It uses the actual domain package so fixtures match real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -listing internal/archive/testdata/listing_2015.txt \
//	  -year 2015 \
//	  -raw-out data/mock/listings_2015.json \
//	  -enriched-out data/mock/enriched_2015.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/couchcryptid/ctf-archive-etl/internal/archive"
	"github.com/couchcryptid/ctf-archive-etl/internal/domain"
	"github.com/couchcryptid/ctf-archive-etl/internal/enrich"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	listing := flag.String("listing", "", "input tab-separated listing file")
	year := flag.Int("year", 0, "listing year of the events")
	rawOut := flag.String("raw-out", "", "output path for collector record JSON fixture")
	enrichedOut := flag.String("enriched-out", "", "output path for enriched event JSON fixture")
	flag.Parse()

	if *listing == "" || *year == 0 || *rawOut == "" || *enrichedOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -listing, -year, -raw-out, -enriched-out")
	}

	records, enriched, engine, err := processListing(*listing, *year)
	if err != nil {
		return fmt.Errorf("processing %s: %w", *listing, err)
	}
	log.Printf("year %d: %d records", *year, len(records))

	if err := writeJSON(*rawOut, records); err != nil {
		return fmt.Errorf("writing collector fixture: %w", err)
	}
	log.Printf("wrote collector fixture: %s", *rawOut)

	if err := writeJSON(*enrichedOut, enriched); err != nil {
		return fmt.Errorf("writing enriched fixture: %w", err)
	}
	log.Printf("wrote enriched fixture: %s", *enrichedOut)

	printStats(enriched, engine)
	return nil
}

// processListing parses a listing file and runs the real enrichment over it,
// returning both the collector-shaped records and the enriched events.
func processListing(path string, year int) ([]domain.RawListingRecord, []domain.EnrichedEvent, *enrich.Engine, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	events, err := archive.ReadListing(f, year)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("read listing: %w", err)
	}
	if len(events) == 0 {
		return nil, nil, nil, fmt.Errorf("no events in listing")
	}

	records := make([]domain.RawListingRecord, 0, len(events))
	for _, e := range events {
		records = append(records, domain.RawListingRecord{
			EventID:  strconv.Itoa(e.EventID),
			Name:     e.Name,
			Year:     strconv.Itoa(e.Year),
			DateRaw:  e.DateRaw,
			Format:   e.Format,
			Location: e.Location,
			Weight:   strconv.FormatFloat(e.Weight, 'f', -1, 64),
			Notes:    e.Notes,
		})
	}

	engine := enrich.New()
	enriched := engine.EnrichAll(events)
	return records, enriched, engine, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

type formatCount struct {
	format string
	count  int
}

func printStats(enriched []domain.EnrichedEvent, engine *enrich.Engine) {
	summary := engine.Summary()

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", summary.Total)
	fmt.Printf("Parsed: %d (%.1f%%)\n", summary.Parsed, summary.ParsedPct)
	fmt.Printf("Failures: %d\n", summary.FailureCount)
	for _, f := range engine.Failures() {
		fmt.Printf("  #%d %s: %q\n", f.EventID, f.Name, f.DateRaw)
	}
	fmt.Printf("Outliers (>%dh): %d\n", enrich.OutlierThresholdHours, summary.OutlierCount)
	for _, o := range engine.Outliers() {
		fmt.Printf("  #%d %s: %.1fh\n", o.EventID, o.Name, o.DurationHours)
	}

	printFormatBreakdown(enriched)
	printFlagCounts(enriched)
	printFirstParsed(enriched)
}

func printFormatBreakdown(enriched []domain.EnrichedEvent) {
	counts := map[string]int{}
	for i := range enriched {
		counts[enriched[i].Format]++
	}
	fc := make([]formatCount, 0, len(counts))
	for f, c := range counts {
		fc = append(fc, formatCount{f, c})
	}
	sort.Slice(fc, func(i, j int) bool { return fc[i].count > fc[j].count })
	fmt.Printf("Formats (%d): ", len(fc))
	for _, f := range fc {
		fmt.Printf("%s=%d ", f.format, f.count)
	}
	fmt.Println()
}

func printFlagCounts(enriched []domain.EnrichedEvent) {
	var qualifiers, finals, prequalified, weekend int
	for i := range enriched {
		e := &enriched[i]
		if e.IsQualifier {
			qualifiers++
		}
		if e.IsFinals {
			finals++
		}
		if e.IsPrequalified {
			prequalified++
		}
		if e.IsWeekend != nil && *e.IsWeekend {
			weekend++
		}
	}
	fmt.Printf("\nQualifiers: %d\n", qualifiers)
	fmt.Printf("Finals: %d\n", finals)
	fmt.Printf("Prequalified: %d\n", prequalified)
	fmt.Printf("Weekend starts: %d\n", weekend)
}

func printFirstParsed(enriched []domain.EnrichedEvent) {
	for i := range enriched {
		e := &enriched[i]
		if e.Start == nil {
			continue
		}
		fmt.Printf("\nFirst parsed record:\n")
		fmt.Printf("  EventID: %d\n", e.EventID)
		fmt.Printf("  Name: %s\n", e.Name)
		fmt.Printf("  Start: %s\n", e.Start.Format("2006-01-02 15:04"))
		fmt.Printf("  End: %s\n", e.End.Format("2006-01-02 15:04"))
		if e.DurationHours != nil {
			fmt.Printf("  Duration: %gh", *e.DurationHours)
			if e.DurationCategory != nil {
				fmt.Printf(" (%s)", *e.DurationCategory)
			}
			fmt.Println()
		}
		if e.StartQuarter != nil && e.Season != nil {
			fmt.Printf("  Quarter: %s, Season: %s\n", *e.StartQuarter, *e.Season)
		}
		fmt.Printf("  Sequence: %d\n", e.SequenceInYear)
		break
	}

	// Longest parsed duration.
	var maxHours float64
	var maxName string
	for i := range enriched {
		if enriched[i].DurationHours != nil && *enriched[i].DurationHours > maxHours {
			maxHours = *enriched[i].DurationHours
			maxName = enriched[i].Name
		}
	}
	if maxName != "" {
		fmt.Printf("\nMax duration: %gh (%s)\n", maxHours, maxName)
	}
}
