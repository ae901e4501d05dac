package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the ETL pipeline.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Enrichment metrics.
	ParseFailures      prometheus.Counter
	DurationOutliers   prometheus.Counter
	EventDurationHours prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ctf_etl",
			Name:      "messages_consumed_total",
			Help:      "Total messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ctf_etl",
			Name:      "messages_produced_total",
			Help:      "Total messages written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ctf_etl",
			Name:      "transform_errors_total",
			Help:      "Total transformation failures.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ctf_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ctf_etl",
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ctf_etl",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ParseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ctf_etl",
			Name:      "parse_failures_total",
			Help:      "Events whose raw date range could not be parsed.",
		}),
		DurationOutliers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ctf_etl",
			Name:      "duration_outliers_total",
			Help:      "Events with a duration over seven days.",
		}),
		EventDurationHours: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ctf_etl",
			Name:      "event_duration_hours",
			Help:      "Parsed event durations in hours.",
			Buckets:   []float64{1, 4, 8, 12, 24, 48, 72, 168, 336},
		}),
	}

	prometheus.MustRegister(
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.ParseFailures,
		m.DurationOutliers,
		m.EventDurationHours,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ctf_etl", Name: "messages_consumed_total"}),
		MessagesProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ctf_etl", Name: "messages_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ctf_etl", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "ctf_etl", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "ctf_etl", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "ctf_etl", Name: "batch_processing_duration_seconds"}),
		ParseFailures:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ctf_etl", Name: "parse_failures_total"}),
		DurationOutliers:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "ctf_etl", Name: "duration_outliers_total"}),
		EventDurationHours:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "ctf_etl", Name: "event_duration_hours"}),
	}
}
