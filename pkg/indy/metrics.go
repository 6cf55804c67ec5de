package indy

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records dispatch statistics. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	inFlight    prometheus.Gauge
	completions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	late        *prometheus.CounterVec
	violations  prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "indy",
			Subsystem: "commands",
			Name:      "in_flight",
			Help:      "Commands dispatched to libindy and not yet completed",
		}),
		completions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "indy",
			Subsystem: "commands",
			Name:      "completions_total",
			Help:      "Completed commands by outcome",
		}, []string{"command", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "indy",
			Subsystem: "commands",
			Name:      "duration_seconds",
			Help:      "Time from dispatch to completion",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"command"}),
		late: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "indy",
			Subsystem: "commands",
			Name:      "discarded_total",
			Help:      "Completions that arrived after the caller cancelled",
		}, []string{"command"}),
		violations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "indy",
			Subsystem: "commands",
			Name:      "protocol_violations_total",
			Help:      "Completions for unknown or already completed handles",
		}),
	}
	for _, c := range []prometheus.Collector{m.inFlight, m.completions, m.duration, m.late, m.violations} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) started() {
	if m == nil {
		return
	}
	m.inFlight.Inc()
}

func (m *Metrics) completed(command string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.inFlight.Dec()
	m.completions.WithLabelValues(command, outcomeLabel(err)).Inc()
	m.duration.WithLabelValues(command).Observe(elapsed.Seconds())
}

func (m *Metrics) discarded(command string) {
	if m == nil {
		return
	}
	m.inFlight.Dec()
	m.late.WithLabelValues(command).Inc()
}

func (m *Metrics) protocolViolation() {
	if m == nil {
		return
	}
	m.violations.Inc()
}

func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Name()
	}
	var unknown *UnknownCodeError
	if errors.As(err, &unknown) {
		return "unknown_code"
	}
	return "error"
}
