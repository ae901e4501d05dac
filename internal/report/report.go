// Package report renders the human-readable summaries printed by the
// archive tooling: listing parse summaries, enrichment summaries, and
// dataset descriptions. All output goes through an io.Writer so the
// binaries stay testable.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/couchcryptid/ctf-archive-etl/internal/domain"
	"github.com/couchcryptid/ctf-archive-etl/internal/enrich"
)

const (
	bannerWidth    = 60
	maxReviewItems = 5
)

// Banner prints a starred section header.
func Banner(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("*", bannerWidth))
	fmt.Fprintf(w, "*  %s\n", title)
	fmt.Fprintln(w, strings.Repeat("*", bannerWidth))
}

// Divider prints the separator used between dataset descriptions.
func Divider(w io.Writer) {
	fmt.Fprintf(w, "*%s\n\n", strings.Repeat("-", bannerWidth-1))
}

type bucket struct {
	name  string
	count int
}

// tally counts occurrences and orders buckets by count descending, name
// ascending on ties, so summaries are stable across runs.
func tally(values []string) []bucket {
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	buckets := make([]bucket, 0, len(counts))
	for name, count := range counts {
		buckets = append(buckets, bucket{name, count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].count != buckets[j].count {
			return buckets[i].count > buckets[j].count
		}
		return buckets[i].name < buckets[j].name
	})
	return buckets
}

// WriteListingSummary prints the post-parse overview for one listing year:
// format and location distributions, rows flagged for review, and weight
// statistics. Prints nothing for an empty dataset.
func WriteListingSummary(w io.Writer, year int, events []domain.Event) {
	if len(events) == 0 {
		return
	}

	Banner(w, fmt.Sprintf("Summary for %d", year))
	fmt.Fprintf(w, "*  Total events: %d\n", len(events))

	formats := make([]string, len(events))
	locations := make([]string, len(events))
	for i, e := range events {
		formats[i] = e.Format
		locations[i] = e.Location
	}

	fmt.Fprintln(w, "*")
	fmt.Fprintln(w, "*  Format distribution:")
	for _, b := range tally(formats) {
		pct := float64(b.count) / float64(len(events)) * 100
		fmt.Fprintf(w, "*    %s: %d (%.1f%%)\n", b.name, b.count, pct)
	}

	fmt.Fprintln(w, "*")
	fmt.Fprintln(w, "*  Location distribution:")
	for _, b := range tally(locations) {
		pct := float64(b.count) / float64(len(events)) * 100
		fmt.Fprintf(w, "*    %s: %d (%.1f%%)\n", b.name, b.count, pct)
	}

	writeReviewItems(w, events)
	writeWeightStats(w, events)
}

func writeReviewItems(w io.Writer, events []domain.Event) {
	var review []domain.Event
	for _, e := range events {
		if e.Format == domain.ReviewSentinel || e.Location == domain.ReviewSentinel {
			review = append(review, e)
		}
	}
	if len(review) == 0 {
		return
	}

	fmt.Fprintln(w, "*")
	fmt.Fprintf(w, "*  WARNING: %d events need manual review:\n", len(review))
	for _, e := range review[:min(maxReviewItems, len(review))] {
		fmt.Fprintf(w, "*    - ID %d: %s\n", e.EventID, e.Name)
		if e.Format == domain.ReviewSentinel {
			fmt.Fprintln(w, "*      Format needs review")
		}
		if e.Location == domain.ReviewSentinel {
			fmt.Fprintln(w, "*      Location needs review")
		}
	}
	if len(review) > maxReviewItems {
		fmt.Fprintf(w, "*    ... and %d more\n", len(review)-maxReviewItems)
	}
}

func writeWeightStats(w io.Writer, events []domain.Event) {
	var (
		weighted int
		sum      float64
		max      float64
	)
	for _, e := range events {
		if e.Weight == 0 {
			continue
		}
		weighted++
		sum += e.Weight
		if e.Weight > max {
			max = e.Weight
		}
	}
	if weighted == 0 {
		return
	}

	fmt.Fprintln(w, "*")
	fmt.Fprintln(w, "*  Weight stats:")
	fmt.Fprintf(w, "*    Events with weight > 0: %d/%d\n", weighted, len(events))
	fmt.Fprintf(w, "*    Average: %.2f\n", sum/float64(weighted))
	fmt.Fprintf(w, "*    Max: %.2f\n", max)
}

// WriteEnrichmentSummary prints the post-enrichment overview: totals, year
// coverage, parse rate, and diagnostic counts. Prints nothing when the
// engine saw no events.
func WriteEnrichmentSummary(w io.Writer, summary enrich.Summary) {
	if summary.Total == 0 {
		return
	}

	Banner(w, "Enrichment Summary")
	fmt.Fprintf(w, "*  Total events: %d\n", summary.Total)
	fmt.Fprintf(w, "*  Year range: %d-%d (%d years)\n", summary.YearMin, summary.YearMax, summary.YearCount)
	fmt.Fprintf(w, "*  Successfully parsed: %d/%d (%.1f%%)\n", summary.Parsed, summary.Total, summary.ParsedPct)

	if summary.FailureCount > 0 {
		fmt.Fprintf(w, "*  Failed to parse: %d events\n", summary.FailureCount)
	}
	if summary.OutlierCount > 0 {
		fmt.Fprintf(w, "*  Duration outliers (>7 days): %d events\n", summary.OutlierCount)
	}
}

// Dataset is a loaded CSV handed to WriteDescription: the file's display
// name, its header, and its data rows.
type Dataset struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// WriteDescription prints shape and key distributions for a dataset. The
// year, format, and location breakdowns appear only when the corresponding
// column exists, so it works for both the parsed and enriched CSVs.
func WriteDescription(w io.Writer, ds Dataset) {
	fmt.Fprintf(w, "*  File: %s\n", ds.Name)
	fmt.Fprintf(w, "*  Rows: %d\n", len(ds.Rows))
	fmt.Fprintf(w, "*  Columns: %d\n", len(ds.Columns))
	fmt.Fprintf(w, "*  Column names: %s\n", strings.Join(ds.Columns, ", "))
	fmt.Fprintln(w)

	if values, ok := ds.column("year"); ok {
		counts := make(map[string]int)
		for _, v := range values {
			counts[v]++
		}
		years := make([]string, 0, len(counts))
		for y := range counts {
			years = append(years, y)
		}
		sort.Strings(years)

		fmt.Fprintln(w, "*  Events per year:")
		for _, y := range years {
			fmt.Fprintf(w, "*    %s: %d\n", y, counts[y])
		}
		fmt.Fprintln(w)
	}

	if values, ok := ds.column("format"); ok {
		fmt.Fprintln(w, "*  Format distribution:")
		for _, b := range tally(values) {
			fmt.Fprintf(w, "*    %s: %d\n", b.name, b.count)
		}
		fmt.Fprintln(w)
	}

	if values, ok := ds.column("location"); ok {
		fmt.Fprintln(w, "*  Location distribution:")
		for _, b := range tally(values) {
			fmt.Fprintf(w, "*    %s: %d\n", b.name, b.count)
		}
		fmt.Fprintln(w)
	}
}

func (ds Dataset) column(name string) ([]string, bool) {
	idx := -1
	for i, col := range ds.Columns {
		if col == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}

	values := make([]string, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		if idx < len(row) {
			values = append(values, row[idx])
		}
	}
	return values, true
}
