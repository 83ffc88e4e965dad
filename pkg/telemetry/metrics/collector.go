package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"daybook-hq/daybook/pkg/config"
)

// Collector owns the Prometheus registry and all metric instances.
//
// Metrics:
//   - daybook_requests_total: request count by method, path, status
//   - daybook_request_duration_seconds: request duration histogram
//   - daybook_active_connections: currently open client connections
//   - daybook_active_sessions: currently live session tokens
//   - daybook_parse_errors_total: requests rejected as malformed
//   - daybook_size_limit_rejections_total: requests rejected for size, by kind
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	activeConnections   prometheus.Gauge
	activeSessions      prometheus.GaugeFunc
	parseErrors         prometheus.Counter
	sizeLimitRejections *prometheus.CounterVec
}

// NewCollector creates a collector and registers all metrics. sessionCount is
// sampled on each scrape for the active-sessions gauge; nil reports zero. If
// registry is nil a private registry is created.
func NewCollector(cfg config.MetricsConfig, sessionCount func() int, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "daybook"
	}
	if sessionCount == nil {
		sessionCount = func() int { return 0 }
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed",
			},
			[]string{"method", "path", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
			},
			[]string{"method", "path"},
		),

		activeConnections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "active_connections",
				Help:      "Number of currently open client connections",
			},
		),

		activeSessions: prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "active_sessions",
				Help:      "Number of currently live session tokens",
			},
			func() float64 { return float64(sessionCount()) },
		),

		parseErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "parse_errors_total",
				Help:      "Total number of requests rejected as malformed",
			},
		),

		sizeLimitRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "size_limit_rejections_total",
				Help:      "Total number of requests rejected for exceeding a size limit",
			},
			[]string{"limit"},
		),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.activeConnections,
		c.activeSessions,
		c.parseErrors,
		c.sizeLimitRejections,
	)

	return c
}

// RecordRequest records a completed request.
func (c *Collector) RecordRequest(method, path string, status int, duration time.Duration) {
	c.requestsTotal.WithLabelValues(method, path, statusLabel(status)).Inc()
	c.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ConnOpened increments the active connection gauge.
func (c *Collector) ConnOpened() {
	c.activeConnections.Inc()
}

// ConnClosed decrements the active connection gauge.
func (c *Collector) ConnClosed() {
	c.activeConnections.Dec()
}

// RecordParseError counts a request rejected as malformed.
func (c *Collector) RecordParseError() {
	c.parseErrors.Inc()
}

// RecordSizeLimitRejection counts a request rejected for size. limit names
// the exceeded bound ("header" or "body").
func (c *Collector) RecordSizeLimitRejection(limit string) {
	c.sizeLimitRejections.WithLabelValues(limit).Inc()
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// statusLabel formats a status code as a metric label.
func statusLabel(status int) string {
	switch status {
	case 200:
		return "200"
	case 400:
		return "400"
	case 401:
		return "401"
	case 404:
		return "404"
	case 405:
		return "405"
	case 413:
		return "413"
	case 500:
		return "500"
	default:
		return "other"
	}
}
