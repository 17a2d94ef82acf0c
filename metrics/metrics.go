// Package metrics exposes Prometheus metrics for report generation.
package metrics

import (
	"time"

	"github.com/ka2n/yure/api"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for report generation.
type Metrics struct {
	Generations      *prometheus.CounterVec // labels: outcome={report,fetch_failure,no_data}
	GenerateDuration prometheus.Histogram
	FeaturesReported prometheus.Gauge
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "yure",
			Name:      "report_generations_total",
			Help:      "Report generations by outcome.",
		}, []string{"outcome"}),
		GenerateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "yure",
			Name:      "report_generation_duration_seconds",
			Help:      "Duration of a fetch, parse and format cycle.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FeaturesReported: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "yure",
			Name:      "features_reported",
			Help:      "Number of earthquakes in the most recent report.",
		}),
	}

	reg.MustRegister(m.Generations, m.GenerateDuration, m.FeaturesReported)

	// Pre-populate outcome labels so every series is exported from the start.
	for _, o := range []api.Outcome{api.OutcomeReport, api.OutcomeFetchFailure, api.OutcomeNoData} {
		m.Generations.WithLabelValues(string(o))
	}

	return m
}

// ObserveGeneration implements api.Observer.
func (m *Metrics) ObserveGeneration(outcome api.Outcome, d time.Duration, features int) {
	m.Generations.WithLabelValues(string(outcome)).Inc()
	m.GenerateDuration.Observe(d.Seconds())
	if outcome == api.OutcomeReport {
		m.FeaturesReported.Set(float64(features))
	}
}

var _ api.Observer = (*Metrics)(nil)
