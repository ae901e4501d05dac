package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// rangeSeparatorRe splits a date range on its middle dash, which renders as
	// an em-dash, en-dash, or plain hyphen depending on when the listing was
	// copied, e.g. "27 Dec., 12:00 PST — 29 Dec. 2015, 12:00 PST".
	rangeSeparatorRe = regexp.MustCompile(`\s*[—–-]\s*`)

	// clockTokenRe matches a time-of-day token: "12:00", "9:30:00", "5:00pm".
	clockTokenRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::\d{2})?(am|pm)?$`)
)

// monthTokens maps month names and the abbreviations seen in the archive
// (trailing dots already stripped) to calendar months.
var monthTokens = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// ParseDateRange resolves a free-text archive date range against the listing
// year. It is a best-effort heuristic over a format with no grammar: the two
// halves are fuzzy-parsed individually, the year is appended where the text
// omits it, December→January ranges roll into the next year, and an end that
// still lands before the start is re-read with the year forced forward.
// Returns ok=false for anything that cannot be resolved; it never panics and
// the same input always yields the same result.
func ParseDateRange(dateText string, year int) (Interval, bool) {
	text := strings.TrimSpace(dateText)
	if text == "" {
		return Interval{}, false
	}

	parts := rangeSeparatorRe.Split(text, -1)
	if len(parts) != 2 {
		return Interval{}, false
	}
	startText := strings.TrimSpace(parts[0])
	endText := strings.TrimSpace(parts[1])
	if startText == "" || endText == "" {
		return Interval{}, false
	}

	yearToken := strconv.Itoa(year)
	nextYearToken := strconv.Itoa(year + 1)

	// The listing year covers both halves unless the text says otherwise.
	if !strings.Contains(startText, yearToken) {
		startText += " " + yearToken
	}
	start, ok := parseSegment(startText, civilParts{})
	if !ok {
		return Interval{}, false
	}

	if !strings.Contains(endText, yearToken) && !strings.Contains(endText, nextYearToken) {
		// A January end on a December start crosses into the next year.
		if strings.Contains(strings.ToLower(endText), "jan") && start.Month() == time.December {
			endText += " " + nextYearToken
		} else {
			endText += " " + yearToken
		}
	}

	// The end half may carry only a time of day; it shares the start's
	// month and day in that case.
	inherit := civilParts{
		month: start.Month(), hasMonth: true,
		day: start.Day(), hasDay: true,
	}
	end, ok := parseSegment(endText, inherit)
	if !ok {
		return Interval{}, false
	}

	// Rollover correction: an end before the start means the year token was
	// wrong or ambiguous. Re-read the end's day and month with the year forced
	// forward; the time of day does not survive this.
	if end.Before(start) {
		fields := strings.Fields(endText)
		if len(fields) < 2 {
			return Interval{}, false
		}
		end, ok = parseSegment(fields[0]+" "+fields[1]+" "+nextYearToken, inherit)
		if !ok || end.Before(start) {
			return Interval{}, false
		}
	}

	return Interval{Start: start, End: end}, true
}

// civilParts accumulates the date-time components recognized in one segment.
type civilParts struct {
	day, year    int
	month        time.Month
	hour, minute int

	hasDay, hasMonth, hasYear, hasTime bool
}

// parseSegment fuzzy-parses one half of a date range into a civil date-time.
// Tokens it does not recognize (weekday names, timezone abbreviations, UTC
// offsets) are skipped; recognizing the same component twice fails the
// segment. Components missing from the text are taken from inherit; a segment
// still missing its year, month, or day fails.
func parseSegment(text string, inherit civilParts) (time.Time, bool) {
	var p civilParts

	for _, field := range strings.Fields(text) {
		tok := strings.ToLower(strings.Trim(field, ".,;()"))
		switch {
		case tok == "":
			// punctuation-only token

		case monthTokens[tok] != 0:
			if p.hasMonth {
				return time.Time{}, false
			}
			p.month = monthTokens[tok]
			p.hasMonth = true

		case clockTokenRe.MatchString(tok):
			hour, minute, ok := parseClockToken(tok)
			if !ok {
				continue
			}
			if p.hasTime {
				return time.Time{}, false
			}
			p.hour, p.minute = hour, minute
			p.hasTime = true

		case tok == "am" || tok == "pm":
			if p.hasTime {
				p.hour = meridiemHour(p.hour, tok)
			}

		case isDigits(tok):
			n, err := strconv.Atoi(tok)
			if err != nil {
				continue
			}
			switch {
			case len(tok) == 4:
				if p.hasYear {
					return time.Time{}, false
				}
				p.year = n
				p.hasYear = true
			case len(tok) <= 2 && n >= 1 && n <= 31:
				if p.hasDay {
					return time.Time{}, false
				}
				p.day = n
				p.hasDay = true
			}
			// other numbers are noise, e.g. a stray UTC offset digit

		default:
			// weekday name, timezone abbreviation, or other decoration
		}
	}

	if !p.hasMonth && inherit.hasMonth {
		p.month = inherit.month
		p.hasMonth = true
	}
	if !p.hasDay && inherit.hasDay {
		p.day = inherit.day
		p.hasDay = true
	}
	if !p.hasYear || !p.hasMonth || !p.hasDay {
		return time.Time{}, false
	}

	t := time.Date(p.year, p.month, p.day, p.hour, p.minute, 0, 0, time.UTC)
	// time.Date normalizes out-of-range days (Feb 30 → Mar 2); a date that
	// moved is an invalid day for its month, not a different event date.
	if t.Day() != p.day || t.Month() != p.month {
		return time.Time{}, false
	}
	return t, true
}

// parseClockToken parses an "HH:MM", "HH:MM:SS", or "H:MMpm" token down to
// minute granularity.
func parseClockToken(tok string) (hour, minute int, ok bool) {
	m := clockTokenRe.FindStringSubmatch(tok)
	if m == nil {
		return 0, 0, false
	}
	hour, errH := strconv.Atoi(m[1])
	minute, errM := strconv.Atoi(m[2])
	if errH != nil || errM != nil || hour > 23 || minute > 59 {
		return 0, 0, false
	}
	if m[3] != "" {
		hour = meridiemHour(hour, m[3])
	}
	return hour, minute, true
}

func meridiemHour(hour int, meridiem string) int {
	switch {
	case meridiem == "pm" && hour < 12:
		return hour + 12
	case meridiem == "am" && hour == 12:
		return 0
	}
	return hour
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
