// Package enrich runs the per-event enrichment from the domain package
// across a whole dataset, tracking the state that only exists at dataset
// level: per-year sequence numbers, parse failures, and duration outliers.
package enrich

import (
	"slices"
	"sync"

	"github.com/couchcryptid/ctf-archive-etl/internal/domain"
)

// OutlierThresholdHours flags events longer than seven days. Durations over
// this usually mean a mis-parsed date range rather than a real event.
const OutlierThresholdHours = 168

// Failure identifies an event whose raw date range could not be parsed.
type Failure struct {
	EventID int
	Name    string
	DateRaw string
}

// Outlier identifies an event with an implausibly long duration.
type Outlier struct {
	EventID       int
	Name          string
	DurationHours float64
}

// Summary condenses an engine's bookkeeping after a run.
type Summary struct {
	Total        int     `json:"total"`
	Parsed       int     `json:"parsed"`
	ParsedPct    float64 `json:"parsed_pct"`
	YearMin      int     `json:"year_min"`
	YearMax      int     `json:"year_max"`
	YearCount    int     `json:"year_count"`
	FailureCount int     `json:"failure_count"`
	OutlierCount int     `json:"outlier_count"`
}

// Engine enriches events one at a time and accumulates diagnostics. Safe for
// concurrent use: the pipeline records events while the stats endpoint reads
// the aggregates.
type Engine struct {
	mu            sync.Mutex
	yearSequences map[int]int
	total         int
	parsed        int
	failures      []Failure
	outliers      []Outlier
}

func New() *Engine {
	return &Engine{yearSequences: make(map[int]int)}
}

// EnrichNext enriches one event, assigning the next sequence number for its
// listing year and recording any parse failure or duration outlier.
func (e *Engine) EnrichNext(event domain.Event) domain.EnrichedEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.yearSequences[event.Year]++
	out := domain.EnrichEvent(event, e.yearSequences[event.Year])

	e.total++
	if out.Start != nil {
		e.parsed++
	} else {
		e.failures = append(e.failures, Failure{
			EventID: event.EventID,
			Name:    event.Name,
			DateRaw: event.DateRaw,
		})
	}

	if out.DurationHours != nil && *out.DurationHours > OutlierThresholdHours {
		e.outliers = append(e.outliers, Outlier{
			EventID:       event.EventID,
			Name:          event.Name,
			DurationHours: *out.DurationHours,
		})
	}

	return out
}

// EnrichAll enriches a full dataset in listing order.
func (e *Engine) EnrichAll(events []domain.Event) []domain.EnrichedEvent {
	enriched := make([]domain.EnrichedEvent, 0, len(events))
	for _, event := range events {
		enriched = append(enriched, e.EnrichNext(event))
	}
	return enriched
}

// Failures returns the parse failures recorded so far, in input order.
func (e *Engine) Failures() []Failure {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.failures)
}

// Outliers returns the duration outliers recorded so far, in input order.
func (e *Engine) Outliers() []Outlier {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.outliers)
}

func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Summary{
		Total:        e.total,
		Parsed:       e.parsed,
		YearCount:    len(e.yearSequences),
		FailureCount: len(e.failures),
		OutlierCount: len(e.outliers),
	}
	if e.total > 0 {
		s.ParsedPct = float64(e.parsed) / float64(e.total) * 100
	}
	for year := range e.yearSequences {
		if s.YearMin == 0 || year < s.YearMin {
			s.YearMin = year
		}
		if year > s.YearMax {
			s.YearMax = year
		}
	}
	return s
}
