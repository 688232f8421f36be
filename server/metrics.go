package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the HTTP API.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	catalogEntries  *prometheus.GaugeVec
}

// NewMetrics creates the instruments on a fresh registry so tests can
// run multiple servers without duplicate registration panics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "patternbook_http_requests_total",
			Help: "Total HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "patternbook_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		catalogEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "patternbook_catalog_entries",
			Help: "Entries in the active catalog by category.",
		}, []string{"category"}),
	}

	registry.MustRegister(m.requestsTotal, m.requestDuration, m.catalogEntries)
	return m
}

// Registry exposes the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SetCatalogSize records the entry counts of the active catalog.
func (m *Metrics) SetCatalogSize(patterns, smells int) {
	m.catalogEntries.WithLabelValues("pattern").Set(float64(patterns))
	m.catalogEntries.WithLabelValues("smell").Set(float64(smells))
}
