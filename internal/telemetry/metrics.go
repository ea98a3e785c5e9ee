// Package telemetry declares the Prometheus collectors the resolver's
// caller applies around each resolveTick invocation. The collectors
// live outside internal/tick deliberately — the resolver itself stays
// clock-free and I/O-free (§5); only the caller observes duration.
package telemetry

import "github.com/prometheus/client_golang/prometheus"

var (
	TickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mesh_tick_duration_seconds",
			Help:    "Wall-clock time to resolve one tick, measured by the caller of resolveTick.",
			Buckets: prometheus.DefBuckets,
		},
	)

	WaveCount = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mesh_wave_count",
			Help:    "Number of waves resolved in a single tick.",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		},
	)

	ClusterOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mesh_cluster_outcomes_total",
			Help: "Conflict clusters resolved, labeled by outcome.",
		},
		[]string{"outcome"}, // "resolved" | "stalemate" | "budget_exceeded"
	)

	PersistenceFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mesh_persistence_failures_total",
			Help: "Repository write failures that prevented a tick from advancing.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		TickDuration,
		WaveCount,
		ClusterOutcomesTotal,
		PersistenceFailuresTotal,
	)
}
