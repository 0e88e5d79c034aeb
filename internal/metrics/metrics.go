// Package metrics exposes Prometheus instruments for scans and fetches.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics of the scanner.
type Metrics struct {
	AnalysesTotal   *prometheus.CounterVec // labels: outcome
	AnalyzeDuration prometheus.Histogram
	FetchesTotal    *prometheus.CounterVec // labels: source, outcome
	ScoreLatest     *prometheus.GaugeVec   // labels: symbol
}

// New creates the metrics and registers them with reg. A nil reg skips
// registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scanner_analyses_total",
			Help: "Per-symbol analyses by outcome (ok or error code)",
		}, []string{"outcome"}),
		AnalyzeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scanner_analyze_duration_seconds",
			Help:    "Time to fetch, compute and score one symbol",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		FetchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scanner_fetches_total",
			Help: "Daily bar fetches by source and outcome",
		}, []string{"source", "outcome"}),
		ScoreLatest: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "scanner_score",
			Help: "Latest composite score per symbol",
		}, []string{"symbol"}),
	}
	if reg != nil {
		reg.MustRegister(m.AnalysesTotal, m.AnalyzeDuration, m.FetchesTotal, m.ScoreLatest)
	}
	return m
}

// ObserveAnalysis records one finished symbol analysis. An empty errCode
// means the symbol was scored.
func (m *Metrics) ObserveAnalysis(symbol, errCode string, score int, took time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if errCode != "" {
		outcome = errCode
	} else {
		m.ScoreLatest.WithLabelValues(symbol).Set(float64(score))
	}
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
	m.AnalyzeDuration.Observe(took.Seconds())
}

// ObserveFetch records one fetch attempt against source.
func (m *Metrics) ObserveFetch(source string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.FetchesTotal.WithLabelValues(source, outcome).Inc()
}
