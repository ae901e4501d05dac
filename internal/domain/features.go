package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// archiveStartYear anchors YearIndex: the first year of the CTFtime archive
// covered by this dataset.
const archiveStartYear = 2015

// DurationHours returns the interval length in hours, rounded to two decimals.
// Returns ok=false when either endpoint is missing (zero) or the pair is
// inverted; [ParseDateRange] never produces an inverted pair, but externally
// supplied pairs get the same guard.
func DurationHours(start, end time.Time) (float64, bool) {
	if start.IsZero() || end.IsZero() {
		return 0, false
	}
	hours := end.Sub(start).Hours()
	if hours < 0 {
		return 0, false
	}
	return round2(hours), true
}

// Quarter maps a month (1-12) to its calendar quarter, "Q1" through "Q4".
func Quarter(month int) string {
	return fmt.Sprintf("Q%d", (month-1)/3+1)
}

// Season maps a month to its meteorological season (Northern Hemisphere).
func Season(month int) string {
	switch month {
	case 12, 1, 2:
		return "Winter"
	case 3, 4, 5:
		return "Spring"
	case 6, 7, 8:
		return "Summer"
	default:
		return "Fall"
	}
}

// CovidEra buckets a year/month into Pre-COVID (before March 2020), COVID
// (March 2020 through December 2021), or Post-COVID (January 2022 onward).
// Month granularity only; callers without a parsed start date pass month 1.
func CovidEra(year, month int) string {
	switch {
	case year < 2020 || (year == 2020 && month < 3):
		return "Pre-COVID"
	case year <= 2021:
		return "COVID"
	default:
		return "Post-COVID"
	}
}

// DurationCategory buckets a duration: Short (<24h), Medium (24-48h
// inclusive), Long (>48h).
func DurationCategory(hours float64) string {
	switch {
	case hours < 24:
		return "Short"
	case hours <= 48:
		return "Medium"
	default:
		return "Long"
	}
}

// WeightCategory buckets a CTFtime rating weight: Zero (0), Low (<25),
// Medium (25-50 inclusive), High (>50).
func WeightCategory(weight float64) string {
	switch {
	case weight == 0:
		return "Zero"
	case weight < 25:
		return "Low"
	case weight <= 50:
		return "Medium"
	default:
		return "High"
	}
}

// IsMultiDay reports whether a duration strictly exceeds 24 hours. Exactly 24
// hours is a single-day event even though DurationCategory already calls it
// Medium; the asymmetry is part of the dataset's published definition.
func IsMultiDay(hours float64) bool {
	return hours > 24
}

// IsWeekend reports whether the start date falls on Friday, Saturday, or
// Sunday. Friday counts: most events in the archive open Friday evening.
func IsWeekend(start time.Time) bool {
	// Monday-indexed weekday: Monday=0 ... Sunday=6.
	return (int(start.Weekday())+6)%7 >= 4
}

// IsQualifier reports whether an event name marks a qualification round.
// Substring match, so "Semifinal Quals" and "Prelims" both hit.
func IsQualifier(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "qual") || strings.Contains(lower, "prelim")
}

// IsFinals reports whether an event name marks a final round. Substring
// match: "Grand Final" and "Semifinals" both hit.
func IsFinals(name string) bool {
	return strings.Contains(strings.ToLower(name), "final")
}

// IsPrequalified reports whether the notes mark teams as prequalified.
func IsPrequalified(notes string) bool {
	return notes != "N/A" && strings.Contains(strings.ToLower(notes), "prequalified")
}

// YearIndex returns the year's offset from the start of the archive.
func YearIndex(year int) int {
	return year - archiveStartYear
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
