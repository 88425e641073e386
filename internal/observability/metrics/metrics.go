package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for the conversational intake flow.
type IntakeMetrics struct {
	turnsTotal    *prometheus.CounterVec
	bookingsTotal *prometheus.CounterVec
	turnLatency   *prometheus.HistogramVec
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psychbot",
			Subsystem: "intake",
			Name:      "turns_total",
			Help:      "Total conversation turns processed",
		}, []string{"outcome"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psychbot",
			Subsystem: "intake",
			Name:      "bookings_total",
			Help:      "Total booking finalization attempts",
		}, []string{"status"}),
		turnLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "psychbot",
			Subsystem: "intake",
			Name:      "turn_latency_seconds",
			Help:      "Latency of conversation turn processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.bookingsTotal, m.turnLatency)
	return m
}

func (m *IntakeMetrics) ObserveTurn(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(outcome).Inc()
	m.turnLatency.WithLabelValues(outcome).Observe(seconds)
}

func (m *IntakeMetrics) ObserveBooking(success bool) {
	if m == nil {
		return
	}
	status := "failed"
	if success {
		status = "confirmed"
	}
	m.bookingsTotal.WithLabelValues(status).Inc()
}
