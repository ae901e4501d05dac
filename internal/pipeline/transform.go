package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/ctf-archive-etl/internal/domain"
	"github.com/couchcryptid/ctf-archive-etl/internal/enrich"
	"github.com/couchcryptid/ctf-archive-etl/internal/observability"
)

// CTFTransformer implements Transformer: it parses the collector's listing
// JSON, enriches the event through a shared engine, and serializes the
// result for the sink topic. A parse failure of the date range is not an
// error; the event still flows through with its date features absent.
type CTFTransformer struct {
	engine  *enrich.Engine
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates a CTFTransformer. The engine carries per-year
// sequence state across messages, so one engine serves the whole run.
func NewTransformer(engine *enrich.Engine, logger *slog.Logger, metrics *observability.Metrics) *CTFTransformer {
	return &CTFTransformer{
		engine:  engine,
		logger:  logger,
		metrics: metrics,
	}
}

func (t *CTFTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	event, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	enriched := t.engine.EnrichNext(event)

	if enriched.Start == nil {
		t.logger.Warn("date range did not parse",
			"event_id", event.EventID,
			"name", event.Name,
			"date_raw", event.DateRaw,
		)
		t.metrics.ParseFailures.Inc()
	}

	if enriched.DurationHours != nil {
		t.metrics.EventDurationHours.Observe(*enriched.DurationHours)
		if *enriched.DurationHours > enrich.OutlierThresholdHours {
			t.logger.Warn("duration outlier",
				"event_id", event.EventID,
				"name", event.Name,
				"duration_hours", *enriched.DurationHours,
			)
			t.metrics.DurationOutliers.Inc()
		}
	}

	return domain.SerializeEnrichedEvent(enriched)
}
