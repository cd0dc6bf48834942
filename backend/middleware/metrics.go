// ABOUTME: Prometheus instrumentation for HTTP routes and engine calculations
// ABOUTME: Registers collectors tolerantly so repeated construction reuses existing series

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Calculation outcomes recorded by RecordCalculation.
const (
	OutcomePass = "pass"
	OutcomeFail = "fail"
)

// Metrics bundles the service collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	Requests     *prometheus.CounterVec
	Durations    *prometheus.HistogramVec
	Calculations *prometheus.CounterVec
}

// NewMetrics registers collectors on reg, defaulting to the global registry
// when reg is nil.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests, labeled by route, method, and status code.",
	}, []string{"route", "method", "code"}), "http_requests_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"route", "method"}), "http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	calculations, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_calculations_total",
		Help: "Feasibility calculations performed, labeled by calculator and pass/fail outcome.",
	}, []string{"calculator", "outcome"}), "engine_calculations_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		gatherer:     gatherer,
		Requests:     requests,
		Durations:    durations,
		Calculations: calculations,
	}, nil
}

// Instrument returns middleware recording count and latency under route.
// route should be the registered pattern, not the raw path, to keep label
// cardinality bounded.
func (m *Metrics) Instrument(route string) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if m == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next(wrapped, r)

			m.Requests.WithLabelValues(route, r.Method, strconv.Itoa(wrapped.statusCode)).Inc()
			m.Durations.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		}
	}
}

// RecordCalculation counts one calculator run.
func (m *Metrics) RecordCalculation(calculator string, pass bool) {
	if m == nil {
		return
	}
	outcome := OutcomeFail
	if pass {
		outcome = OutcomePass
	}
	m.Calculations.WithLabelValues(calculator, outcome).Inc()
}

// Handler exposes the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, fmt.Errorf("registering %s: %w", name, err)
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, fmt.Errorf("registering %s: %w", name, err)
	}
	return vec, nil
}
