// Package domain models CTFtime archive event data.
//
// # Data Source
//
// Events originate from the CTFtime archive pages (https://ctftime.org/event/list/),
// one listing per calendar year, copied as tab-separated text with six columns:
// name, date range, format, location, weight, notes. The listing parser assigns
// sequential event IDs, injects the listing year, and normalizes the categorical
// columns; in streaming mode an upstream collector publishes each parsed row as
// flat JSON (all values as strings) to the Kafka source topic.
//
// # CTFtime Data Conventions
//
// Date ranges:
//
//	Free text, two halves joined by an em-dash, en-dash, or hyphen:
//	  "27 Dec., 12:00 PST — 29 Dec. 2015, 12:00 PST"
//	  "05 Aug., 17:00 PDT — 09 Aug. 2015, 13:00 PDT"
//	The year usually appears only in the end half; the listing year fills the
//	gap. Ranges ending in early January of the following year omit the started
//	year entirely ("28 Dec. — 02 Jan."). Timezone abbreviations and weekday
//	names are decoration: they are observed and discarded, and timestamps are
//	kept as naive civil date-times at minute granularity. See [ParseDateRange].
//
// Format:
//
//	Jeopardy, Attack-Defense (including the "Attack-defence" spelling),
//	Hack-Quest, or free text. The listing stage maps unrecognized values to the
//	REVIEW sentinel for manual triage; the enrichment stage folds Hack-Quest
//	into Jeopardy and buckets everything outside the known set as "Other".
//
// Location:
//
//	"On-line" (CTFtime's historical spelling) or a venue description. The
//	listing stage collapses venues to "In-person"; the enrichment stage
//	canonicalizes to Online / On-site / Hybrid.
//
// Weight:
//
//	CTFtime rating weight, 0–100. Blank or non-numeric values become 0
//	(events that were never weighted), not a parse error.
//
// Notes:
//
//	Free text. "N/A" is the sentinel for absent notes.
//
// # Derived Features
//
// Enrichment derives calendar buckets (quarter, season, weekday, COVID era),
// duration measures and categories, keyword flags (qualifier / finals /
// prequalified, matched as lower-cased substrings), a year index anchored to
// the first archive year (2015), and a per-year sequence number reflecting
// input order. Date-derived fields are all-or-nothing per event: when the date
// range cannot be parsed the event is still emitted with those fields absent.
// See [EnrichEvent].
package domain
