package observability

import (
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SimulatorMetrics bundles the collectors tracking private transaction
// simulation activity.
type SimulatorMetrics struct {
	simulations *prometheus.CounterVec
	rejections  *prometheus.CounterVec
	latency     *prometheus.HistogramVec
}

// ChainMetrics bundles collectors for header chain growth.
type ChainMetrics struct {
	headHeight prometheus.Gauge
}

var (
	simulatorMetricsOnce sync.Once
	simulatorRegistry    *SimulatorMetrics

	chainMetricsOnce sync.Once
	chainRegistry    *ChainMetrics
)

// Simulator returns the lazily-initialised metrics registry for the private
// transaction simulator.
func Simulator() *SimulatorMetrics {
	simulatorMetricsOnce.Do(func() {
		simulatorRegistry = &SimulatorMetrics{
			simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "veil",
				Subsystem: "privacy",
				Name:      "simulations_total",
				Help:      "Count of private transaction simulations segmented by outcome.",
			}, []string{"outcome"}),
			rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "veil",
				Subsystem: "privacy",
				Name:      "rejections_total",
				Help:      "Count of simulations rejected before execution segmented by reason.",
			}, []string{"reason"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "veil",
				Subsystem: "privacy",
				Name:      "simulation_duration_seconds",
				Help:      "Latency distribution for private transaction simulations.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"outcome"}),
		}
		prometheus.MustRegister(
			simulatorRegistry.simulations,
			simulatorRegistry.rejections,
			simulatorRegistry.latency,
		)
	})
	return simulatorRegistry
}

// Observe records one completed simulation attempt. Outcome should be a
// stable low-cardinality string such as "successful", "failed", "invalid" or
// "unresolved".
func (m *SimulatorMetrics) Observe(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	outcome = strings.TrimSpace(outcome)
	if outcome == "" {
		outcome = "unknown"
	}
	m.simulations.WithLabelValues(outcome).Inc()
	m.latency.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordRejection increments the rejection counter for the supplied reason.
func (m *SimulatorMetrics) RecordRejection(reason string) {
	if m == nil {
		return
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "unspecified"
	}
	m.rejections.WithLabelValues(reason).Inc()
}

// Chain exposes the metrics registry for header chain instrumentation.
func Chain() *ChainMetrics {
	chainMetricsOnce.Do(func() {
		chainRegistry = &ChainMetrics{
			headHeight: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "veil",
				Subsystem: "chain",
				Name:      "head_height",
				Help:      "Height of the most recently stored block header.",
			}),
		}
		prometheus.MustRegister(chainRegistry.headHeight)
	})
	return chainRegistry
}

// RecordHead updates the head height gauge.
func (m *ChainMetrics) RecordHead(height uint64) {
	if m == nil {
		return
	}
	m.headHeight.Set(float64(height))
}
