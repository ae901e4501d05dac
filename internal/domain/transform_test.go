package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDefconQuals  = "DEF CON CTF Qualifier"
	testDefconFinals = "DEF CON CTF Finals"
	testQualsDate    = "16 May, 00:00 UTC — 18 May 2015, 00:00 UTC"
)

func TestParseRawEvent(t *testing.T) {
	t.Run("full listing record", func(t *testing.T) {
		data := []byte(`{"event_id":"12","name":"DEF CON CTF Qualifier","year":"2015","date_raw":"16 May, 00:00 UTC — 18 May 2015, 00:00 UTC","format":"Jeopardy","location":"On-line","weight":"70.0","notes":"N/A"}`)
		raw := RawEvent{Value: data}
		result, err := ParseRawEvent(raw)

		require.NoError(t, err)
		assert.Equal(t, 12, result.EventID)
		assert.Equal(t, testDefconQuals, result.Name)
		assert.Equal(t, 2015, result.Year)
		assert.Equal(t, testQualsDate, result.DateRaw)
		assert.Equal(t, "Jeopardy", result.Format)
		assert.Equal(t, "On-line", result.Location)
		assert.Equal(t, 70.0, result.Weight)
		assert.Equal(t, "N/A", result.Notes)
	})

	t.Run("blank weight degrades to zero", func(t *testing.T) {
		data := []byte(`{"event_id":"3","name":"Some CTF","year":"2016","date_raw":"","format":"","location":"","weight":"","notes":""}`)
		result, err := ParseRawEvent(RawEvent{Value: data})

		require.NoError(t, err)
		assert.Equal(t, 0.0, result.Weight)
	})

	t.Run("non-numeric event id degrades to zero", func(t *testing.T) {
		data := []byte(`{"event_id":"abc","name":"Some CTF","year":"2016"}`)
		result, err := ParseRawEvent(RawEvent{Value: data})

		require.NoError(t, err)
		assert.Equal(t, 0, result.EventID)
	})

	t.Run("padded year", func(t *testing.T) {
		data := []byte(`{"event_id":"1","name":"Some CTF","year":" 2017 "}`)
		result, err := ParseRawEvent(RawEvent{Value: data})

		require.NoError(t, err)
		assert.Equal(t, 2017, result.Year)
	})

	t.Run("missing year", func(t *testing.T) {
		data := []byte(`{"event_id":"1","name":"Some CTF"}`)
		_, err := ParseRawEvent(RawEvent{Value: data})

		assert.Error(t, err)
	})

	t.Run("non-numeric year", func(t *testing.T) {
		data := []byte(`{"event_id":"1","name":"Some CTF","year":"twenty-fifteen"}`)
		_, err := ParseRawEvent(RawEvent{Value: data})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "year")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte("{invalid json")})
		assert.Error(t, err)
	})
}

func TestEnrichEvent(t *testing.T) {
	t.Run("weekend qualifier", func(t *testing.T) {
		event := Event{
			EventID:  12,
			Name:     testDefconQuals,
			Year:     2015,
			DateRaw:  testQualsDate,
			Format:   "Jeopardy",
			Location: "On-line",
			Weight:   70.0,
			Notes:    "N/A",
		}

		result := EnrichEvent(event, 9)

		require.NotNil(t, result.Start)
		require.NotNil(t, result.End)
		assert.Equal(t, time.Date(2015, 5, 16, 0, 0, 0, 0, time.UTC), *result.Start)
		assert.Equal(t, time.Date(2015, 5, 18, 0, 0, 0, 0, time.UTC), *result.End)

		require.NotNil(t, result.DurationHours)
		assert.Equal(t, 48.0, *result.DurationHours)
		require.NotNil(t, result.DurationDays)
		assert.Equal(t, 2.0, *result.DurationDays)
		require.NotNil(t, result.IsMultiDay)
		assert.True(t, *result.IsMultiDay)
		require.NotNil(t, result.DurationCategory)
		assert.Equal(t, "Medium", *result.DurationCategory)

		require.NotNil(t, result.StartMonth)
		assert.Equal(t, 5, *result.StartMonth)
		require.NotNil(t, result.StartQuarter)
		assert.Equal(t, "Q2", *result.StartQuarter)
		require.NotNil(t, result.StartDayOfWeek)
		assert.Equal(t, "Saturday", *result.StartDayOfWeek)
		require.NotNil(t, result.IsWeekend)
		assert.True(t, *result.IsWeekend)
		require.NotNil(t, result.Season)
		assert.Equal(t, "Spring", *result.Season)

		assert.Equal(t, "Pre-COVID", result.CovidEra)
		assert.Equal(t, "High", result.WeightCategory)
		assert.True(t, result.IsQualifier)
		assert.False(t, result.IsFinals)
		assert.False(t, result.IsPrequalified)
		assert.Equal(t, 0, result.YearIndex)
		assert.Equal(t, 9, result.SequenceInYear)
		assert.Equal(t, "Online", result.Location)
		assert.Equal(t, "Jeopardy", result.Format)
	})

	t.Run("unparseable date keeps name and weight features", func(t *testing.T) {
		event := Event{
			EventID:  40,
			Name:     testDefconFinals,
			Year:     2021,
			DateRaw:  "TBA",
			Format:   "Attack-Defense",
			Location: "In-person",
			Weight:   35.0,
			Notes:    "Prequalified teams only",
		}

		result := EnrichEvent(event, 3)

		assert.Nil(t, result.Start)
		assert.Nil(t, result.End)
		assert.Nil(t, result.DurationHours)
		assert.Nil(t, result.DurationDays)
		assert.Nil(t, result.StartMonth)
		assert.Nil(t, result.StartQuarter)
		assert.Nil(t, result.StartDayOfWeek)
		assert.Nil(t, result.IsWeekend)
		assert.Nil(t, result.Season)
		assert.Nil(t, result.IsMultiDay)
		assert.Nil(t, result.DurationCategory)

		assert.Equal(t, "COVID", result.CovidEra, "era falls back to january")
		assert.Equal(t, "Medium", result.WeightCategory)
		assert.False(t, result.IsQualifier)
		assert.True(t, result.IsFinals)
		assert.True(t, result.IsPrequalified)
		assert.Equal(t, 6, result.YearIndex)
		assert.Equal(t, 3, result.SequenceInYear)
		assert.Equal(t, "On-site", result.Location)
	})

	t.Run("era uses start month when parsed", func(t *testing.T) {
		event := Event{
			EventID: 7,
			Name:    "Some CTF",
			Year:    2020,
			DateRaw: "17 Jan., 10:00 — 19 Jan. 2020, 10:00",
		}

		result := EnrichEvent(event, 1)

		require.NotNil(t, result.StartMonth)
		assert.Equal(t, 1, *result.StartMonth)
		assert.Equal(t, "Pre-COVID", result.CovidEra)

		event.DateRaw = "17 April, 10:00 — 19 April 2020, 10:00"
		result = EnrichEvent(event, 2)
		assert.Equal(t, "COVID", result.CovidEra)
	})

	t.Run("hack-quest collapses into jeopardy", func(t *testing.T) {
		event := Event{EventID: 5, Name: "Some CTF", Year: 2016, Format: "Hack-Quest", Location: "REVIEW"}

		result := EnrichEvent(event, 1)

		assert.Equal(t, "Jeopardy", result.Format)
		assert.Equal(t, "REVIEW", result.Location, "unknown locations pass through")
	})

	t.Run("empty notes default to N/A", func(t *testing.T) {
		event := Event{EventID: 5, Name: "Some CTF", Year: 2016}

		result := EnrichEvent(event, 1)

		assert.Equal(t, "N/A", result.Notes)
		assert.False(t, result.IsPrequalified)
	})

	t.Run("single day event", func(t *testing.T) {
		event := Event{
			EventID: 8,
			Name:    "Some CTF",
			Year:    2016,
			DateRaw: "5 March, 09:00 — 5 March 2016, 17:00",
		}

		result := EnrichEvent(event, 1)

		require.NotNil(t, result.DurationHours)
		assert.Equal(t, 8.0, *result.DurationHours)
		require.NotNil(t, result.DurationDays)
		assert.Equal(t, 0.33, *result.DurationDays)
		require.NotNil(t, result.IsMultiDay)
		assert.False(t, *result.IsMultiDay)
		require.NotNil(t, result.DurationCategory)
		assert.Equal(t, "Short", *result.DurationCategory)
	})
}

func TestSerializeEnrichedEvent(t *testing.T) {
	fixedTime := time.Date(2024, 4, 26, 15, 45, 30, 0, time.UTC)
	mockClock := clockwork.NewFakeClockAt(fixedTime)
	SetClock(mockClock)
	defer SetClock(nil)

	t.Run("parsed event", func(t *testing.T) {
		event := EnrichEvent(Event{
			EventID:  12,
			Name:     testDefconQuals,
			Year:     2015,
			DateRaw:  testQualsDate,
			Format:   "Jeopardy",
			Location: "On-line",
			Weight:   70.0,
			Notes:    "N/A",
		}, 9)

		out, err := SerializeEnrichedEvent(event)

		require.NoError(t, err)
		assert.Equal(t, []byte("12"), out.Key)
		assert.Equal(t, "Jeopardy", out.Headers["format"])
		assert.Equal(t, "2024-04-26T15:45:30Z", out.Headers["processed_at"])

		var payload map[string]any
		require.NoError(t, json.Unmarshal(out.Value, &payload))
		assert.Equal(t, testDefconQuals, payload["name"])
		assert.Equal(t, 48.0, payload["duration_hours"])
		assert.Equal(t, "Saturday", payload["start_day_of_week"])
		assert.Equal(t, true, payload["is_weekend"])
		assert.Equal(t, "Online", payload["location"])
		assert.Equal(t, 9.0, payload["event_sequence_in_year"])
	})

	t.Run("unparsed event omits date features", func(t *testing.T) {
		event := EnrichEvent(Event{
			EventID: 40,
			Name:    "Some CTF",
			Year:    2021,
			DateRaw: "TBA",
		}, 1)

		out, err := SerializeEnrichedEvent(event)

		require.NoError(t, err)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(out.Value, &payload))
		assert.NotContains(t, payload, "duration_hours")
		assert.NotContains(t, payload, "start_datetime")
		assert.NotContains(t, payload, "is_weekend")
		assert.Contains(t, payload, "covid_era")
		assert.Contains(t, payload, "weight_category")
	})
}
