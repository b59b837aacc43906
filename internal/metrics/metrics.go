// Package metrics holds Prometheus instruments that are used across the
// site.  All collectors are registered with the global registry, so
// mounting promhttp.Handler() is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route pattern and status code.",
		}, []string{"route", "code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"})

	ThemePicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "theme_picks_total",
			Help: "Body themes picked for rendered requests.",
		}, []string{"theme"})

	TemplateRenderErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "template_render_errors_total",
			Help: "Template executions that failed.",
		}, []string{"template"})

	CatalogCacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Course listings served from the in-memory cache.",
		})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ThemePicksTotal,
		TemplateRenderErrorsTotal,
		CatalogCacheHitsTotal,
	)
}
