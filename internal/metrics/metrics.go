// Package metrics exposes recompute statistics as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/moolen/fmea/internal/ap"
	"github.com/moolen/fmea/internal/linkage"
	"github.com/moolen/fmea/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

var legNames = [3]string{linkage.KindMode.String(), linkage.KindEffect.String(), linkage.KindCause.String()}

// Metrics holds the worksheet pipeline collectors.
type Metrics struct {
	Recomputes        prometheus.Counter     // recomputes that ran the pipeline
	CacheHits         prometheus.Counter     // recomputes answered from the cache
	LegResolutions    *prometheus.CounterVec // leg outcomes by leg (FM/FE/FC) and method
	AmbiguousMatches  prometheus.Counter     // legs resolved through a shared text key
	Priorities        *prometheus.GaugeVec   // pairings per stage and priority in the last recompute
	RecomputeDuration prometheus.Histogram
}

// NewMetrics creates and registers the collectors with reg. Pass a fresh
// prometheus.NewRegistry() in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Recomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fmea_recomputes_total",
			Help: "Total number of worksheet recomputes that ran the pipeline",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fmea_recompute_cache_hits_total",
			Help: "Total number of recomputes served from the cache",
		}),
		LegResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fmea_link_leg_resolutions_total",
			Help: "Failure link legs by leg and resolution method",
		}, []string{"leg", "method"}),
		AmbiguousMatches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fmea_link_ambiguous_matches_total",
			Help: "Failure link legs resolved through a text key shared by several entities",
		}),
		Priorities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fmea_action_priority_pairings",
			Help: "Pairings per stage and action priority in the last recompute",
		}, []string{"stage", "priority"}),
		RecomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fmea_recompute_duration_seconds",
			Help:    "Duration of uncached worksheet recomputes",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}

	reg.MustRegister(
		m.Recomputes,
		m.CacheHits,
		m.LegResolutions,
		m.AmbiguousMatches,
		m.Priorities,
		m.RecomputeDuration,
	)
	return m
}

// ObserveRecompute records one uncached recompute. A nil receiver is a no-op.
func (m *Metrics) ObserveRecompute(report linkage.Report, counts map[models.Stage]ap.Counts, took time.Duration) {
	if m == nil {
		return
	}
	m.Recomputes.Inc()
	m.RecomputeDuration.Observe(took.Seconds())

	for _, lr := range report.Links {
		for i, leg := range lr.Legs() {
			m.LegResolutions.WithLabelValues(legNames[i], string(leg.Method)).Inc()
			if leg.Ambiguous {
				m.AmbiguousMatches.Inc()
			}
		}
	}

	for stage, c := range counts {
		m.Priorities.WithLabelValues(string(stage), "H").Set(float64(c.High))
		m.Priorities.WithLabelValues(string(stage), "M").Set(float64(c.Medium))
		m.Priorities.WithLabelValues(string(stage), "L").Set(float64(c.Low))
		m.Priorities.WithLabelValues(string(stage), "unassessed").Set(float64(c.Unassessed))
	}
}

// ObserveCacheHit records a recompute answered from the cache.
func (m *Metrics) ObserveCacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}
