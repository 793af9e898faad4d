// Package metrics exposes the Prometheus collectors the worker pool
// updates as it schedules jobs: throughput, per-job duration, and the
// running reliability estimate.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles every collector one run registers. Construct with New and
// register it on a *prometheus.Registry (or prometheus.DefaultRegisterer);
// cmd/wotan exposes it on an HTTP handler when --metrics-addr is set.
type Metrics struct {
	JobsTotal          prometheus.Counter
	JobDuration        prometheus.Histogram
	ReliabilityGauge   prometheus.Gauge
	DemandMultiplier   prometheus.Gauge
	ClampedProbability prometheus.Counter
}

// New constructs an unregistered Metrics bundle.
func New() *Metrics {
	return &Metrics{
		JobsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wotan_jobs_total",
			Help: "Number of (source,sink) connection jobs processed.",
		}),
		JobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wotan_job_duration_seconds",
			Help:    "Wall-clock duration of one connection job (D + E+F + E+G).",
			Buckets: prometheus.DefBuckets,
		}),
		ReliabilityGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wotan_reliability_estimate",
			Help: "Most recently computed aggregate reliability estimate.",
		}),
		DemandMultiplier: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wotan_demand_multiplier",
			Help: "Most recently probed demand multiplier in the binary search.",
		}),
		ClampedProbability: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wotan_clamped_probabilities_total",
			Help: "Number of computed probabilities clamped into [0,1] beyond tolerance.",
		}),
	}
}

// Register adds every collector in m to reg (prometheus.DefaultRegisterer
// for the promhttp default handler).
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.JobsTotal, m.JobDuration, m.ReliabilityGauge, m.DemandMultiplier, m.ClampedProbability} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
