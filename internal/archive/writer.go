package archive

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/couchcryptid/ctf-archive-etl/internal/domain"
)

const (
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
)

// eventHeader is the column order of the parsed events CSV.
var eventHeader = []string{
	"event_id", "name", "year", "date_raw",
	"format", "location", "weight", "notes",
}

// enrichedHeader is the column order of the enriched CSV: identity first,
// then temporal columns, then classifications, with the raw inputs last.
var enrichedHeader = []string{
	"event_id", "name", "year",
	"start_date", "end_date", "start_datetime", "end_datetime",
	"duration_hours", "duration_days", "start_month", "start_quarter",
	"start_day_of_week", "is_weekend", "season", "covid_era",
	"format", "location", "weight",
	"is_multi_day", "duration_category", "weight_category",
	"is_qualifier", "is_finals", "is_prequalified",
	"year_index", "event_sequence_in_year",
	"date_raw", "notes",
}

// WriteEvents writes a parsed events CSV with a header row.
func WriteEvents(w io.Writer, events []domain.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(eventHeader); err != nil {
		return fmt.Errorf("write events csv: %w", err)
	}
	for _, e := range events {
		row := []string{
			strconv.Itoa(e.EventID),
			e.Name,
			strconv.Itoa(e.Year),
			e.DateRaw,
			e.Format,
			e.Location,
			formatFloat(e.Weight),
			e.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write events csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEnriched writes the enriched CSV. Features that are absent because
// the date range did not parse become empty cells; booleans are written as
// 1/0 to keep the file friendly to numeric tooling.
func WriteEnriched(w io.Writer, events []domain.EnrichedEvent) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(enrichedHeader); err != nil {
		return fmt.Errorf("write enriched csv: %w", err)
	}
	for _, e := range events {
		row := []string{
			strconv.Itoa(e.EventID),
			e.Name,
			strconv.Itoa(e.Year),
			optTime(e.Start, dateLayout),
			optTime(e.End, dateLayout),
			optTime(e.Start, datetimeLayout),
			optTime(e.End, datetimeLayout),
			optFloat(e.DurationHours),
			optFloat(e.DurationDays),
			optInt(e.StartMonth),
			optString(e.StartQuarter),
			optString(e.StartDayOfWeek),
			optBool(e.IsWeekend),
			optString(e.Season),
			e.CovidEra,
			e.Format,
			e.Location,
			formatFloat(e.Weight),
			optBool(e.IsMultiDay),
			optString(e.DurationCategory),
			e.WeightCategory,
			formatBool(e.IsQualifier),
			formatBool(e.IsFinals),
			formatBool(e.IsPrequalified),
			strconv.Itoa(e.YearIndex),
			strconv.Itoa(e.SequenceInYear),
			e.DateRaw,
			e.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write enriched csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func optTime(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}

func optFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func optBool(v *bool) string {
	if v == nil {
		return ""
	}
	return formatBool(*v)
}
