package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FilesDiscovered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gwcat_files_discovered_total",
		Help: "Total number of candidate posterior files discovered.",
	})

	EventsSummarized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gwcat_events_summarized_total",
		Help: "Total number of events successfully parsed and summarized.",
	})

	EventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gwcat_events_failed_total",
		Help: "Total number of per-event pipeline failures.",
	})

	RunsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gwcat_runs_completed_total",
		Help: "Total number of catalog runs, labelled by outcome.",
	}, []string{"outcome"})

	EventProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gwcat_event_processing_duration_ms",
		Help:    "Per-event parse+standardize+summarize latency in milliseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	})
)
