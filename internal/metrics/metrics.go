// Package metrics provides Prometheus metrics for attendance verification and
// location tracking.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors registered by the service.
type Metrics struct {
	registry *prometheus.Registry

	attendanceTotal  *prometheus.CounterVec
	similarityScore  prometheus.Histogram
	pingsTotal       *prometheus.CounterVec
	alertsTotal      prometheus.Counter
	staleDeactivated prometheus.Counter
}

// New creates the collectors and registers them with registry. A nil
// registry gets a fresh one, which keeps tests independent.
func New(registry *prometheus.Registry) (*Metrics, error) {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		registry: registry,
		attendanceTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "presence_attendance_submissions_total",
				Help: "Attendance submissions by outcome",
			},
			[]string{"outcome"},
		),
		similarityScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "presence_biometric_similarity",
				Help:    "Cosine similarity of compared face descriptors",
				Buckets: []float64{0, 0.5, 0.7, 0.8, 0.85, 0.9, 0.93, 0.95, 0.97, 0.99, 1},
			},
		),
		pingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "presence_location_pings_total",
				Help: "Location pings by sharing state",
			},
			[]string{"sharing"},
		),
		alertsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "presence_location_alerts_total",
				Help: "Geofence breach alerts created",
			},
		),
		staleDeactivated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "presence_stale_records_deactivated_total",
				Help: "Active location records deactivated by the stale sweep",
			},
		),
	}

	collectors := []prometheus.Collector{
		m.attendanceTotal,
		m.similarityScore,
		m.pingsTotal,
		m.alertsTotal,
		m.staleDeactivated,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordAttendance(outcome string) {
	m.attendanceTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveSimilarity(similarity float64) {
	m.similarityScore.Observe(similarity)
}

func (m *Metrics) RecordPing(sharing bool) {
	label := "disabled"
	if sharing {
		label = "enabled"
	}
	m.pingsTotal.WithLabelValues(label).Inc()
}

func (m *Metrics) RecordAlert() {
	m.alertsTotal.Inc()
}

func (m *Metrics) RecordStaleDeactivations(n int) {
	m.staleDeactivated.Add(float64(n))
}
