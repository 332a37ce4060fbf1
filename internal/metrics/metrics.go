// Package metrics provides Prometheus metrics for the itinerary API.
// All methods are safe to call on a nil *Metrics, which records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the service's collectors and the registry they live on.
type Metrics struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry
	runtime   bool

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	registrations      *prometheus.CounterVec
	itineraryMutations *prometheus.CounterVec
	avatarUploads      *prometheus.CounterVec
}

// New creates the collectors and registers them.
func New(opts ...Option) *Metrics {
	m := &Metrics{
		namespace: "itinerary",
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	if m.runtime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route pattern, method and status code.",
	}, []string{"route", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route pattern and method.",
		Buckets:   m.buckets,
	}, []string{"route", "method"})

	m.registrations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "traveller_registrations_total",
		Help:      "Register calls by outcome: created or existing.",
	}, []string{"outcome"})

	m.itineraryMutations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "itinerary_mutations_total",
		Help:      "Successful itinerary writes by operation.",
	}, []string{"op"})

	m.avatarUploads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "avatar_uploads_total",
		Help:      "Stored avatars by visibility: public or private (make-public failed).",
	}, []string{"visibility"})

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTP records one finished request.
func (m *Metrics) ObserveHTTP(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// TravellerRegistered records a register call that returned a traveller.
func (m *Metrics) TravellerRegistered(created bool) {
	if m == nil {
		return
	}
	outcome := "existing"
	if created {
		outcome = "created"
	}
	m.registrations.WithLabelValues(outcome).Inc()
}

// ItineraryMutated records a successful create, update or delete.
func (m *Metrics) ItineraryMutated(op string) {
	if m == nil {
		return
	}
	m.itineraryMutations.WithLabelValues(op).Inc()
}

// AvatarUploaded records a stored avatar and whether it was made public.
func (m *Metrics) AvatarUploaded(public bool) {
	if m == nil {
		return
	}
	visibility := "private"
	if public {
		visibility = "public"
	}
	m.avatarUploads.WithLabelValues(visibility).Inc()
}
