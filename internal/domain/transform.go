package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseRawEvent deserializes a RawEvent's value into an Event.
// It expects the flat JSON produced by the collector service, where every
// field is a string. Year must be a valid integer: without it neither date
// parsing nor era bucketing can work. EventID and weight degrade to zero on
// bad input, matching the listing convention of "0" for unrated events.
func ParseRawEvent(raw RawEvent) (Event, error) {
	var rec RawListingRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return Event{}, fmt.Errorf("parse raw event: %w", err)
	}

	year, err := strconv.Atoi(strings.TrimSpace(rec.Year))
	if err != nil {
		return Event{}, fmt.Errorf("parse raw event: year %q: %w", rec.Year, err)
	}

	return Event{
		EventID:  parseIntOrZero(rec.EventID),
		Name:     rec.Name,
		Year:     year,
		DateRaw:  rec.DateRaw,
		Format:   rec.Format,
		Location: rec.Location,
		Weight:   parseFloatOrZero(rec.Weight),
		Notes:    rec.Notes,
	}, nil
}

// parseIntOrZero parses a string as int, returning 0 on failure.
func parseIntOrZero(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// EnrichEvent normalizes and enriches a parsed event. Format and location are
// collapsed into the analysis vocabulary, the raw date range is parsed, and
// the derived columns are filled in. Date-dependent features are present only
// when the date range parsed; name, notes, weight, and year features are
// always present. CovidEra falls back to January when the start month is
// unknown. The sequence argument is the event's 1-based position within its
// listing year.
func EnrichEvent(event Event, sequence int) EnrichedEvent {
	if event.Notes == "" {
		event.Notes = "N/A"
	}
	event.Format = CanonicalFormat(event.Format)
	event.Location = CanonicalLocation(event.Location)

	out := EnrichedEvent{Event: event}
	out.CovidEra = CovidEra(event.Year, 1)
	out.WeightCategory = WeightCategory(event.Weight)
	out.IsQualifier = IsQualifier(event.Name)
	out.IsFinals = IsFinals(event.Name)
	out.IsPrequalified = IsPrequalified(event.Notes)
	out.YearIndex = YearIndex(event.Year)
	out.SequenceInYear = sequence

	interval, ok := ParseDateRange(event.DateRaw, event.Year)
	if !ok {
		return out
	}

	start, end := interval.Start, interval.End
	out.Start = &start
	out.End = &end

	month := int(start.Month())
	quarter := Quarter(month)
	weekday := start.Weekday().String()
	weekend := IsWeekend(start)
	season := Season(month)
	out.StartMonth = &month
	out.StartQuarter = &quarter
	out.StartDayOfWeek = &weekday
	out.IsWeekend = &weekend
	out.Season = &season
	out.CovidEra = CovidEra(event.Year, month)

	if hours, ok := DurationHours(start, end); ok {
		days := round2(hours / 24)
		multiDay := IsMultiDay(hours)
		category := DurationCategory(hours)
		out.DurationHours = &hours
		out.DurationDays = &days
		out.IsMultiDay = &multiDay
		out.DurationCategory = &category
	}

	return out
}

// SerializeEnrichedEvent marshals an enriched event into an OutputEvent for
// the sink topic. The key is the event ID so that per-event ordering survives
// partitioning; headers carry the canonical format and the processing time.
func SerializeEnrichedEvent(event EnrichedEvent) (OutputEvent, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize enriched event: %w", err)
	}

	return OutputEvent{
		Key:   []byte(strconv.Itoa(event.EventID)),
		Value: payload,
		Headers: map[string]string{
			"format":       event.Format,
			"processed_at": clock.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}
