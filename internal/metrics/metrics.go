// Package metrics declares the Prometheus collectors used by the service.
// Constructors return unregistered collectors; the app container registers them.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Login attempt results.
const (
	LoginSuccess  = "success"
	LoginRejected = "rejected"
	LoginError    = "error"
)

// Assignment event results.
const (
	EventApplied   = "applied"
	EventDuplicate = "duplicate"
	EventSkipped   = "skipped"
	EventFailed    = "failed"
)

// HTTP groups request metrics labelled by method, route pattern and status.
type HTTP struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewHTTP returns HTTP request metrics.
func NewHTTP() *HTTP {
	return &HTTP{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}
}

// Collectors returns the collectors to register.
func (m *HTTP) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Requests, m.Duration}
}

// NewLoginAttemptsTotal returns a counter of login attempts by result
func NewLoginAttemptsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "login_attempts_total",
		Help: "Total number of login attempts by result",
	}, []string{"result"})
}

// NewDeliveriesRegisteredTotal returns a counter of registered deliveries
func NewDeliveriesRegisteredTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "deliveries_registered_total",
		Help: "Total number of registered deliveries",
	})
}

// NewAssignmentEventsTotal returns a counter of consumed assignment events by result
func NewAssignmentEventsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_events_total",
		Help: "Total number of consumed assignment events by result",
	}, []string{"result"})
}

// NewAssignmentRetriesTotal returns a counter of assignment event retries
func NewAssignmentRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assignment_retries_total",
		Help: "Total number of assignment event retries after transient failures",
	})
}
