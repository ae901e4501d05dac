// Package archive reads and writes the on-disk forms of the CTFtime
// dataset: raw tab-separated listings, the parsed events CSV, and the
// enriched CSV.
package archive

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/ctf-archive-etl/internal/domain"
)

// Listing columns, in the order CTFtime renders them.
const (
	colName = iota
	colDate
	colFormat
	colLocation
	colWeight
	colNotes
)

// ReadListing parses a raw tab-separated CTFtime listing into events.
// Column order is Name, Date, Format, Location, Weight, Notes; missing
// trailing columns are tolerated and blank lines are skipped. Event IDs are
// assigned sequentially from 1 in listing order.
func ReadListing(r io.Reader, year int) ([]domain.Event, error) {
	var events []domain.Event

	id := 1
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		events = append(events, parseListingLine(line, id, year))
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read listing: %w", err)
	}
	return events, nil
}

func parseListingLine(line string, id, year int) domain.Event {
	cols := strings.Split(line, "\t")
	field := func(i int) string {
		if i < len(cols) {
			return strings.TrimSpace(cols[i])
		}
		return ""
	}

	notes := field(colNotes)
	if notes == "" {
		notes = "N/A"
	}

	// CleanWeight always yields a numeric string.
	weight, _ := strconv.ParseFloat(domain.CleanWeight(field(colWeight)), 64)

	return domain.Event{
		EventID:  id,
		Name:     field(colName),
		Year:     year,
		DateRaw:  field(colDate),
		Format:   domain.StandardizeFormat(field(colFormat)),
		Location: domain.StandardizeLocation(field(colLocation)),
		Weight:   weight,
		Notes:    notes,
	}
}
