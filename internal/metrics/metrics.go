// Package metrics exposes Prometheus counters for housekeeping runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "archive_and_delete"

// Metrics contains the collectors updated by the runner.
type Metrics struct {
	entriesPruned *prometheus.CounterVec
	filesArchived prometheus.Counter
	runs          *prometheus.CounterVec
	lastRun       prometheus.Gauge
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		entriesPruned: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entries_pruned_total",
				Help:      "Entries removed by retention sweeps",
			},
			[]string{"reason"},
		),
		filesArchived: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "files_archived_total",
				Help:      "Files moved into date bundles",
			},
		),
		runs: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Housekeeping runs by outcome",
			},
			[]string{"result"},
		),
		lastRun: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time the last housekeeping run finished",
			},
		),
	}
}

func (m *Metrics) Pruned(reason string) {
	if m == nil {
		return
	}
	m.entriesPruned.WithLabelValues(reason).Inc()
}

func (m *Metrics) Archived(n int) {
	if m == nil {
		return
	}
	m.filesArchived.Add(float64(n))
}

// RunFinished records a completed run; failed marks one with logged errors.
func (m *Metrics) RunFinished(failed bool) {
	if m == nil {
		return
	}
	result := "success"
	if failed {
		result = "error"
	}
	m.runs.WithLabelValues(result).Inc()
	m.lastRun.SetToCurrentTime()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
