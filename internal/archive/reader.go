package archive

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/couchcryptid/ctf-archive-etl/internal/domain"
)

// SkippedRow records a CSV row that could not be converted into an event,
// with its 1-based line number (the header is line 1).
type SkippedRow struct {
	Line int
	Err  error
}

// ReadEvents loads a parsed events CSV, as written by WriteEvents. Rows
// whose year column is not an integer are skipped and reported rather than
// failing the whole file; structural CSV errors and missing columns fail it.
func ReadEvents(r io.Reader) ([]domain.Event, []SkippedRow, error) {
	all, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read events csv: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, errors.New("read events csv: empty file")
	}

	index := make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		index[name] = i
	}
	for _, name := range eventHeader {
		if _, ok := index[name]; !ok {
			return nil, nil, fmt.Errorf("read events csv: missing column %q", name)
		}
	}

	var (
		events  []domain.Event
		skipped []SkippedRow
	)
	for i, row := range all[1:] {
		line := i + 2
		field := func(name string) string { return strings.TrimSpace(row[index[name]]) }

		year, err := strconv.Atoi(field("year"))
		if err != nil {
			skipped = append(skipped, SkippedRow{
				Line: line,
				Err:  fmt.Errorf("year %q: %w", field("year"), err),
			})
			continue
		}

		events = append(events, domain.Event{
			EventID:  atoiOrZero(field("event_id")),
			Name:     field("name"),
			Year:     year,
			DateRaw:  field("date_raw"),
			Format:   field("format"),
			Location: field("location"),
			Weight:   floatOrZero(field("weight")),
			Notes:    field("notes"),
		})
	}
	return events, skipped, nil
}

func atoiOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func floatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
