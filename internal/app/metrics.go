package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"paquexpress-service/internal/metrics"
)

type metricsOut struct {
	dig.Out

	HTTP        *metrics.HTTP
	Logins      *prometheus.CounterVec `name:"login_attempts_total"`
	Deliveries  prometheus.Counter     `name:"deliveries_registered_total"`
	Assignments *prometheus.CounterVec `name:"assignment_events_total"`
	Retries     prometheus.Counter     `name:"assignment_retries_total"`
}

func provideMetrics(reg prometheus.Registerer) (metricsOut, error) {
	var (
		out metricsOut
		err error
	)

	httpMetrics := metrics.NewHTTP()
	if httpMetrics.Requests, err = register(reg, "http_requests_total", httpMetrics.Requests); err != nil {
		return out, err
	}
	if httpMetrics.Duration, err = register(reg, "http_request_duration_seconds", httpMetrics.Duration); err != nil {
		return out, err
	}
	out.HTTP = httpMetrics

	if out.Logins, err = register(reg, "login_attempts_total", metrics.NewLoginAttemptsTotal()); err != nil {
		return out, err
	}
	if out.Deliveries, err = register(reg, "deliveries_registered_total", metrics.NewDeliveriesRegisteredTotal()); err != nil {
		return out, err
	}
	if out.Assignments, err = register(reg, "assignment_events_total", metrics.NewAssignmentEventsTotal()); err != nil {
		return out, err
	}
	if out.Retries, err = register(reg, "assignment_retries_total", metrics.NewAssignmentRetriesTotal()); err != nil {
		return out, err
	}
	return out, nil
}

// register returns the already registered collector when an equal one exists.
func register[T prometheus.Collector](reg prometheus.Registerer, name string, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
