// Package metrics defines the Prometheus metric collectors for benchmark runs
// and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the benchmark.
type Metrics struct {
	RunsTotal                prometheus.Counter
	ConsistencyFailuresTotal prometheus.Counter
	FilesProcessedTotal      *prometheus.CounterVec
	FileFailuresTotal        *prometheus.CounterVec
	WordsProcessedTotal      *prometheus.CounterVec
	StrategyDuration         *prometheus.GaugeVec
	ReportWritesTotal        *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "benchmark_runs_total",
				Help: "Total benchmark runs started by this process.",
			},
		),
		ConsistencyFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "benchmark_consistency_failures_total",
				Help: "Total runs aborted because strategy results disagreed.",
			},
		),
		FilesProcessedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "benchmark_files_processed_total",
				Help: "Total corpus files processed, by strategy.",
			},
			[]string{"strategy"},
		),
		FileFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "benchmark_file_failures_total",
				Help: "Total corpus files that could not be read, by strategy.",
			},
			[]string{"strategy"},
		),
		WordsProcessedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "benchmark_words_processed_total",
				Help: "Total word tokens aggregated, by strategy.",
			},
			[]string{"strategy"},
		),
		StrategyDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "benchmark_strategy_duration_seconds",
				Help: "Wall-clock duration of the most recent run, by strategy.",
			},
			[]string{"strategy"},
		),
		ReportWritesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "benchmark_report_writes_total",
				Help: "Total report artifacts written, by artifact name.",
			},
			[]string{"artifact"},
		),
	}

	prometheus.MustRegister(
		m.RunsTotal,
		m.ConsistencyFailuresTotal,
		m.FilesProcessedTotal,
		m.FileFailuresTotal,
		m.WordsProcessedTotal,
		m.StrategyDuration,
		m.ReportWritesTotal,
	)

	return m
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
