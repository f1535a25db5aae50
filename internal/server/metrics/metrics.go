// Package metrics собирает Prometheus метрики сервера и отдает их на /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Исходы запроса к каталогу
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// CatalogRecorder метрики прокси каталога
type CatalogRecorder interface {
	RecordCacheHit(endpoint string)
	RecordCacheMiss(endpoint string)
	RecordUpstream(endpoint, outcome string, duration time.Duration)
}

// HTTPRecorder метрики входящих HTTP запросов
type HTTPRecorder interface {
	RecordHTTPRequest(method, route string, statusCode int, duration time.Duration)
}

var (
	_ CatalogRecorder = (*Collector)(nil)
	_ HTTPRecorder    = (*Collector)(nil)
)

// Collector реализация на prometheus
type Collector struct {
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	upstreamTotal   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

// NewCollector создает Collector и регистрирует метрики в reg
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "filmvault_catalog_cache_hits_total",
			Help: "Catalog proxy cache hits",
		}, []string{"endpoint"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "filmvault_catalog_cache_misses_total",
			Help: "Catalog proxy cache misses",
		}, []string{"endpoint"}),
		upstreamTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "filmvault_catalog_upstream_requests_total",
			Help: "Requests sent to the upstream catalog by outcome",
		}, []string{"endpoint", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "filmvault_catalog_upstream_latency_seconds",
			Help:    "Upstream catalog latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "filmvault_http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"method", "route", "status_code"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "filmvault_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.cacheHits,
		c.cacheMisses,
		c.upstreamTotal,
		c.upstreamLatency,
		c.httpRequests,
		c.httpLatency,
	)

	return c
}

// RecordCacheHit записывает попадание в кеш
func (c *Collector) RecordCacheHit(endpoint string) {
	c.cacheHits.WithLabelValues(endpoint).Inc()
}

// RecordCacheMiss записывает промах кеша
func (c *Collector) RecordCacheMiss(endpoint string) {
	c.cacheMisses.WithLabelValues(endpoint).Inc()
}

// RecordUpstream записывает исход и длительность запроса к каталогу
func (c *Collector) RecordUpstream(endpoint, outcome string, duration time.Duration) {
	c.upstreamTotal.WithLabelValues(endpoint, outcome).Inc()
	c.upstreamLatency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordHTTPRequest записывает обработанный HTTP запрос
func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler возвращает HTTP handler для Prometheus scrape
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop пустая реализация для тестов и отключенных метрик
type Nop struct{}

func (Nop) RecordCacheHit(string)                                {}
func (Nop) RecordCacheMiss(string)                               {}
func (Nop) RecordUpstream(string, string, time.Duration)         {}
func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}
