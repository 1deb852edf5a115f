// Package prometheus provides the Prometheus implementations of the
// SessionGate metrics interfaces.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/sessiongate/pkg/metrics"
)

// accessMetrics is the Prometheus implementation of metrics.AccessMetrics.
type accessMetrics struct {
	admissions          *prometheus.CounterVec
	activeConnections   *prometheus.GaugeVec
	droppedInstructions *prometheus.CounterVec
	resolutions         *prometheus.CounterVec
}

// NewAccessMetrics creates a new Prometheus-backed AccessMetrics instance.
//
// Returns nil if metrics are not enabled (metrics.InitRegistry not called),
// in which case callers get zero-overhead no-op behavior by passing the nil
// interface through.
func NewAccessMetrics() metrics.AccessMetrics {
	if !metrics.IsEnabled() {
		return nil
	}

	reg := metrics.GetRegistry()

	return &accessMetrics{
		admissions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sessiongate_admissions_total",
				Help: "Total resource admission decisions by resource kind and outcome",
			},
			[]string{"kind", "outcome"}, // outcome: "granted", "denied"
		),
		activeConnections: promauto.With(reg).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sessiongate_active_connections",
				Help: "Resources currently held through the access tracker by resource kind",
			},
			[]string{"kind"},
		),
		droppedInstructions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sessiongate_dropped_instructions_total",
				Help: "Outbound instructions suppressed by the read-only filter by opcode",
			},
			[]string{"opcode"},
		),
		resolutions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "sessiongate_resolutions_total",
				Help: "Restriction resolutions by completeness",
			},
			[]string{"result"}, // "complete", "degraded"
		),
	}
}

func (m *accessMetrics) RecordAdmissionGranted(kind string) {
	m.admissions.WithLabelValues(kind, "granted").Inc()
	m.activeConnections.WithLabelValues(kind).Inc()
}

func (m *accessMetrics) RecordAdmissionDenied(kind string) {
	m.admissions.WithLabelValues(kind, "denied").Inc()
}

func (m *accessMetrics) RecordRelease(kind string) {
	m.activeConnections.WithLabelValues(kind).Dec()
}

func (m *accessMetrics) RecordInstructionDropped(opcode string) {
	m.droppedInstructions.WithLabelValues(opcode).Inc()
}

func (m *accessMetrics) RecordResolution(degraded bool) {
	result := "complete"
	if degraded {
		result = "degraded"
	}
	m.resolutions.WithLabelValues(result).Inc()
}
