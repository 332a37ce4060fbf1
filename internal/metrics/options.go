package metrics

import "github.com/prometheus/client_golang/prometheus"

// Option configures a Metrics instance.
type Option func(*Metrics)

// WithNamespace sets the metric namespace. Default "itinerary".
func WithNamespace(ns string) Option {
	return func(m *Metrics) { m.namespace = ns }
}

// WithHistogramBuckets sets the buckets of the request duration histogram, in seconds.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Metrics) { m.buckets = buckets }
}

// WithRegistry registers collectors on reg instead of a fresh private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(m *Metrics) { m.registry = reg }
}

// WithRuntimeCollectors adds the Go runtime and process collectors.
func WithRuntimeCollectors() Option {
	return func(m *Metrics) { m.runtime = true }
}
