package domain

import (
	"strconv"
	"strings"
)

// ReviewSentinel marks a listing field that could not be classified and
// needs a manual look before the event is trusted downstream.
const ReviewSentinel = "REVIEW"

// StandardizeFormat maps a raw listing format to Jeopardy, Attack-Defense,
// Hack-Quest, or ReviewSentinel. CTFtime listings use inconsistent casing
// and spelling ("Attack-defence", "attack & defense").
func StandardizeFormat(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return ReviewSentinel
	}
	if strings.Contains(lower, "jeopardy") {
		return "Jeopardy"
	}
	if strings.Contains(lower, "attack") &&
		(strings.Contains(lower, "defense") || strings.Contains(lower, "defence")) {
		return "Attack-Defense"
	}
	if strings.Contains(lower, "hack") && strings.Contains(lower, "quest") {
		return "Hack-Quest"
	}
	return ReviewSentinel
}

// StandardizeLocation maps a raw listing location to On-line or In-person.
// Any non-empty value that is not online (a city, a venue, a country) is
// in-person; empty values get ReviewSentinel.
func StandardizeLocation(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return ReviewSentinel
	}
	if strings.Contains(lower, "on-line") || strings.Contains(lower, "online") {
		return "On-line"
	}
	return "In-person"
}

// CleanWeight returns the trimmed weight when it parses as a number, "0"
// otherwise. Listings leave the column blank for unrated events.
func CleanWeight(text string) string {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return "0"
	}
	if _, err := strconv.ParseFloat(clean, 64); err != nil {
		return "0"
	}
	return clean
}

// CanonicalFormat collapses listing-stage formats into the analysis
// vocabulary. Hack-Quest is grouped with Jeopardy; anything outside the
// known set (including ReviewSentinel) becomes Other.
func CanonicalFormat(format string) string {
	if format == "Hack-Quest" {
		return "Jeopardy"
	}
	switch format {
	case "Jeopardy", "Attack-Defense", "Hybrid", "King-of-the-Hill":
		return format
	}
	return "Other"
}

// CanonicalLocation collapses listing-stage locations into the analysis
// vocabulary. Unknown values pass through unchanged so that nothing in the
// archive is silently rewritten.
func CanonicalLocation(location string) string {
	switch location {
	case "On-line", "Online":
		return "Online"
	case "In-person", "On-site":
		return "On-site"
	case "Hybrid":
		return "Hybrid"
	}
	return location
}
