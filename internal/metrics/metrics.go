// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the backend collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	cacheFallbacks   *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	refreshes        *prometheus.CounterVec
}

// New builds a Metrics with its own registry. Each call is independent, so
// tests can create as many as they like.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		upstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tidewatch_upstream_requests_total",
			Help: "Upstream API requests by source and outcome",
		}, []string{"source", "outcome"}),
		upstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tidewatch_upstream_request_duration_seconds",
			Help:    "Upstream API request latency",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		cacheFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tidewatch_cache_fallbacks_total",
			Help: "Responses served from cache after an upstream failure",
		}, []string{"domain"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tidewatch_http_requests_total",
			Help: "HTTP requests by route and status",
		}, []string{"route", "status"}),
		httpLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tidewatch_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tidewatch_refreshes_total",
			Help: "Scheduled refreshes by domain and outcome",
		}, []string{"domain", "outcome"}),
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveUpstream records one upstream call. Nil receivers are ignored so
// clients can run without metrics.
func (m *Metrics) ObserveUpstream(source string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(source, outcome(err)).Inc()
	m.upstreamLatency.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

// CacheFallback counts a response served from cache.
func (m *Metrics) CacheFallback(domain string) {
	if m == nil {
		return
	}
	m.cacheFallbacks.WithLabelValues(domain).Inc()
}

// ObserveHTTP records one handled request.
func (m *Metrics) ObserveHTTP(route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Refresh records a scheduled refresh.
func (m *Metrics) Refresh(domain string, err error) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(domain, outcome(err)).Inc()
}

// Registry exposes the underlying registry for tests and custom handlers.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
