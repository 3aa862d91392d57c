// Package metrics provides optional Prometheus instrumentation for API calls.
package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "arcanum_client"

// Collector records one observation per request pipeline call. A nil
// *Collector is valid and records nothing.
type Collector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
}

// New registers the client metrics with reg. Collectors already registered
// by an earlier call are reused, so several clients can share one registry.
func New(reg prometheus.Registerer) (*Collector, error) {
	// requestsTotal counts calls by method, status code and error kind.
	requestsTotal, err := register(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of Arcanum API requests",
		},
		[]string{"method", "status", "kind"},
	))
	if err != nil {
		return nil, err
	}
	requestDuration, err := register(reg, prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Arcanum API request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	))
	if err != nil {
		return nil, err
	}
	inFlight, err := register(reg, prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "requests_in_flight",
			Help:      "Number of Arcanum API requests currently in flight",
		},
	))
	if err != nil {
		return nil, err
	}
	return &Collector{
		requestsTotal:   requestsTotal,
		requestDuration: requestDuration,
		inFlight:        inFlight,
	}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("register metrics: %w", err)
}

// Start marks a request as in flight and returns the function that completes
// the observation.
func (c *Collector) Start(method string) func(status int, kind string) {
	if c == nil {
		return func(int, string) {}
	}
	c.inFlight.Inc()
	start := time.Now()
	return func(status int, kind string) {
		c.inFlight.Dec()
		c.requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		c.requestsTotal.WithLabelValues(method, strconv.Itoa(status), kind).Inc()
	}
}
