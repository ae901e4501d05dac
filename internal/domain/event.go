package domain

import (
	"context"
	"time"
)

// RawListingRecord represents the flat JSON structure produced by the collector.
// Every value is a string exactly as it appears in the parsed archive CSV;
// year and weight are coerced during parsing.
type RawListingRecord struct {
	EventID  string `json:"event_id"`
	Name     string `json:"name"`
	Year     string `json:"year"`
	DateRaw  string `json:"date_raw"`
	Format   string `json:"format"`
	Location string `json:"location"`
	Weight   string `json:"weight"`
	Notes    string `json:"notes"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Event is a parsed archive record before enrichment.
type Event struct {
	EventID  int     `json:"event_id"`
	Name     string  `json:"name"`
	Year     int     `json:"year"` // listing year, not derived from DateRaw
	DateRaw  string  `json:"date_raw"`
	Format   string  `json:"format"`
	Location string  `json:"location"`
	Weight   float64 `json:"weight"`
	Notes    string  `json:"notes"` // "N/A" when absent
}

// Interval is a parsed date range. Both timestamps are naive civil date-times
// carried in UTC as a neutral location; End never precedes Start.
type Interval struct {
	Start time.Time
	End   time.Time
}

// EnrichedEvent is an Event plus all derived columns. Pointer fields are the
// date-derived ones: they are simultaneously nil (date parse failed) or
// simultaneously set. Everything else is computed for every event.
type EnrichedEvent struct {
	Event

	Start            *time.Time `json:"start_datetime,omitempty"`
	End              *time.Time `json:"end_datetime,omitempty"`
	DurationHours    *float64   `json:"duration_hours,omitempty"`
	DurationDays     *float64   `json:"duration_days,omitempty"`
	StartMonth       *int       `json:"start_month,omitempty"`
	StartQuarter     *string    `json:"start_quarter,omitempty"`
	StartDayOfWeek   *string    `json:"start_day_of_week,omitempty"`
	IsWeekend        *bool      `json:"is_weekend,omitempty"`
	Season           *string    `json:"season,omitempty"`
	IsMultiDay       *bool      `json:"is_multi_day,omitempty"`
	DurationCategory *string    `json:"duration_category,omitempty"`

	CovidEra       string `json:"covid_era"`
	WeightCategory string `json:"weight_category"`
	IsQualifier    bool   `json:"is_qualifier"`
	IsFinals       bool   `json:"is_finals"`
	IsPrequalified bool   `json:"is_prequalified"`
	YearIndex      int    `json:"year_index"`
	SequenceInYear int    `json:"event_sequence_in_year"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
