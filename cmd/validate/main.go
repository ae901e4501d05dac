// Command validate performs end-to-end data integrity checks across the
// archive workflow outputs: the parsed events CSV and the enriched CSV. It
// verifies row counts and field presence, re-runs the enrichment to confirm
// the enriched file matches current pipeline behavior, and checks enum
// alignment with the published dataset schema.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -events data/ctftime_archive_all.csv \
//	  -enriched data/ctftime_archive_all_enriched.csv
package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/ctf-archive-etl/internal/archive"
	"github.com/couchcryptid/ctf-archive-etl/internal/domain"
	"github.com/couchcryptid/ctf-archive-etl/internal/enrich"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	eventsPath := flag.String("events", "", "path to parsed events CSV")
	enrichedPath := flag.String("enriched", "", "path to enriched events CSV")
	flag.Parse()

	if *eventsPath == "" || *enrichedPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*eventsPath, *enrichedPath); code != 0 {
		os.Exit(code)
	}
}

func run(eventsPath, enrichedPath string) int {
	fmt.Println("=== CTF Archive Integrity Validation ===")
	fmt.Println()

	eventRows, err := loadCSV(eventsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load events CSV: %v\n", err)
		return 1
	}

	enrichedRows, err := loadCSV(enrichedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load enriched CSV: %v\n", err)
		return 1
	}

	f, err := os.Open(eventsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: reopen events CSV: %v\n", err)
		return 1
	}
	events, skipped, err := archive.ReadEvents(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse events CSV: %v\n", err)
		return 1
	}

	// ── Run validation phases ──
	phases := []*phase{
		validateEventsFile(eventRows),
		validateEnrichment(events, skipped, enrichedRows),
		validateSchemaAlignment(enrichedRows),
	}

	// ── Report results ──
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d events CSV, %d enriched CSV\n", len(eventRows), len(enrichedRows))

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

// csvRow is a parsed CSV row with field values keyed by header name.
type csvRow struct {
	lineNum int
	fields  map[string]string
}

func loadCSV(path string) ([]csvRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	all, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(all) < 2 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}

	header := all[0]
	var rows []csvRow
	for i, row := range all[1:] {
		fields := make(map[string]string, len(header))
		for j, h := range header {
			if j < len(row) {
				fields[h] = strings.TrimSpace(row[j])
			}
		}
		rows = append(rows, csvRow{lineNum: i + 2, fields: fields})
	}
	return rows, nil
}

// ── Phase 1: Events File Integrity ──
// Validates the parsed events CSV row by row: identifiers, years, and the
// presence of every normalized column.

func validateEventsFile(rows []csvRow) *phase {
	p := &phase{name: "Phase 1: Events File Integrity"}

	seen := map[string]int{}
	for _, row := range rows {
		id, err := strconv.Atoi(row.fields["event_id"])
		if err != nil || id < 1 {
			p.errorf("line %d: bad event_id %q", row.lineNum, row.fields["event_id"])
		}

		year, err := strconv.Atoi(row.fields["year"])
		if err != nil || year < 2000 || year > 2100 {
			p.errorf("line %d: bad year %q", row.lineNum, row.fields["year"])
		}

		key := row.fields["year"] + "|" + row.fields["event_id"]
		if prev, ok := seen[key]; ok {
			p.errorf("line %d: duplicate event_id %s for year %s (first at line %d)",
				row.lineNum, row.fields["event_id"], row.fields["year"], prev)
		} else {
			seen[key] = row.lineNum
		}

		for _, col := range []string{"name", "format", "location", "notes"} {
			if row.fields[col] == "" {
				p.errorf("line %d: empty %s", row.lineNum, col)
			}
		}

		if w, err := strconv.ParseFloat(row.fields["weight"], 64); err != nil || w < 0 {
			p.errorf("line %d: bad weight %q", row.lineNum, row.fields["weight"])
		}
	}
	return p
}

// ── Phase 2: Enrichment Integrity ──
// Re-runs the enrichment over the parsed events and compares the regenerated
// CSV cell by cell against the enriched file.

func validateEnrichment(events []domain.Event, skipped []archive.SkippedRow, enrichedRows []csvRow) *phase {
	p := &phase{name: "Phase 2: Enrichment Integrity"}

	for _, s := range skipped {
		p.errorf("events CSV line %d could not be parsed: %v", s.Line, s.Err)
	}

	engine := enrich.New()
	enriched := engine.EnrichAll(events)

	var buf bytes.Buffer
	if err := archive.WriteEnriched(&buf, enriched); err != nil {
		p.errorf("re-derive enriched CSV: %v", err)
		return p
	}
	derived, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		p.errorf("re-read derived CSV: %v", err)
		return p
	}

	header := derived[0]
	derivedRows := derived[1:]
	if len(derivedRows) != len(enrichedRows) {
		p.errorf("row count: derived %d, file has %d", len(derivedRows), len(enrichedRows))
		return p
	}

	for i, want := range derivedRows {
		got := enrichedRows[i]
		for j, col := range header {
			val, ok := got.fields[col]
			if !ok {
				p.errorf("line %d: missing column %q", got.lineNum, col)
				continue
			}
			if val != want[j] {
				p.errorf("line %d: column %q: derived=%q, file=%q", got.lineNum, col, want[j], val)
			}
		}
	}
	return p
}

// ── Phase 3: Schema Alignment ──
// Validates enriched CSV values against the published dataset schema: enum
// membership, the all-or-nothing date block, and per-year sequences.

var (
	schemaFormats = map[string]bool{
		"Jeopardy": true, "Attack-Defense": true, "Hybrid": true,
		"King-of-the-Hill": true, "Other": true,
	}
	schemaEras       = map[string]bool{"Pre-COVID": true, "COVID": true, "Post-COVID": true}
	schemaWeightCats = map[string]bool{"Zero": true, "Low": true, "Medium": true, "High": true}
	schemaDurCats    = map[string]bool{"": true, "Short": true, "Medium": true, "Long": true}
	schemaSeasons    = map[string]bool{"": true, "Winter": true, "Spring": true, "Summer": true, "Fall": true}
	schemaQuarters   = map[string]bool{"": true, "Q1": true, "Q2": true, "Q3": true, "Q4": true}
)

// dateBlock lists the columns that are all present or all absent together,
// depending on whether the raw date range parsed.
var dateBlock = []string{
	"start_date", "end_date", "start_datetime", "end_datetime",
	"duration_hours", "duration_days", "start_month", "start_quarter",
	"start_day_of_week", "is_weekend", "season", "is_multi_day",
	"duration_category",
}

func validateSchemaAlignment(rows []csvRow) *phase {
	p := &phase{name: "Phase 3: Schema Alignment"}

	yearSequences := map[string][]int{}
	for _, row := range rows {
		checkSchemaRow(p, row)

		if seq, err := strconv.Atoi(row.fields["event_sequence_in_year"]); err == nil {
			y := row.fields["year"]
			yearSequences[y] = append(yearSequences[y], seq)
		} else {
			p.errorf("line %d: bad event_sequence_in_year %q", row.lineNum, row.fields["event_sequence_in_year"])
		}
	}

	// Sequences must count 1..n per year in file order.
	for year, seqs := range yearSequences {
		for i, seq := range seqs {
			if seq != i+1 {
				p.errorf("year %s: sequence %d at position %d (expected %d)", year, seq, i+1, i+1)
				break
			}
		}
	}
	return p
}

func checkSchemaRow(p *phase, row csvRow) {
	pf := func(format string, args ...any) {
		p.errorf("line %d: "+format, append([]any{row.lineNum}, args...)...)
	}

	if !schemaFormats[row.fields["format"]] {
		pf("format %q not in canonical set", row.fields["format"])
	}
	if !schemaEras[row.fields["covid_era"]] {
		pf("covid_era %q not in {Pre-COVID, COVID, Post-COVID}", row.fields["covid_era"])
	}
	if !schemaWeightCats[row.fields["weight_category"]] {
		pf("weight_category %q not in {Zero, Low, Medium, High}", row.fields["weight_category"])
	}
	if !schemaDurCats[row.fields["duration_category"]] {
		pf("duration_category %q not in {Short, Medium, Long}", row.fields["duration_category"])
	}
	if !schemaSeasons[row.fields["season"]] {
		pf("season %q not a season name", row.fields["season"])
	}
	if !schemaQuarters[row.fields["start_quarter"]] {
		pf("start_quarter %q not in {Q1, Q2, Q3, Q4}", row.fields["start_quarter"])
	}

	for _, col := range []string{"is_qualifier", "is_finals", "is_prequalified"} {
		if v := row.fields[col]; v != "0" && v != "1" {
			pf("%s is %q (expected 0 or 1)", col, v)
		}
	}
	for _, col := range []string{"is_weekend", "is_multi_day"} {
		if v := row.fields[col]; v != "" && v != "0" && v != "1" {
			pf("%s is %q (expected empty, 0, or 1)", col, v)
		}
	}

	// year_index is anchored to the first archive year.
	year, yearErr := strconv.Atoi(row.fields["year"])
	idx, idxErr := strconv.Atoi(row.fields["year_index"])
	if yearErr != nil || idxErr != nil {
		pf("bad year %q or year_index %q", row.fields["year"], row.fields["year_index"])
	} else if idx != year-2015 {
		pf("year_index %d does not match year %d (expected %d)", idx, year, year-2015)
	}

	// Date-derived columns are all-or-nothing per row.
	present := 0
	for _, col := range dateBlock {
		if row.fields[col] != "" {
			present++
		}
	}
	if present != 0 && present != len(dateBlock) {
		pf("date block partially filled (%d of %d columns)", present, len(dateBlock))
	}
}
