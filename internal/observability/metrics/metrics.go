// Package metrics exposes prometheus instruments for the HTTP layer and
// the alert pipeline.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the application-level instruments.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	readingsIngested   prometheus.Counter
	alertsEmitted      *prometheus.CounterVec
	alertWriteFailures prometheus.Counter
}

// New registers the instruments on the given registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pondwatch_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pondwatch_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		readingsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pondwatch_readings_ingested_total",
			Help: "Total number of sensor readings accepted",
		}),
		alertsEmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pondwatch_alerts_emitted_total",
				Help: "Total number of threshold alerts emitted",
			},
			[]string{"sensor_type"},
		),
		alertWriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pondwatch_alert_write_failures_total",
			Help: "Total number of alert persistence failures",
		}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.readingsIngested,
		m.alertsEmitted,
		m.alertWriteFailures,
	)

	return m
}

// RecordReadingIngested increments the accepted readings count.
func (m *Metrics) RecordReadingIngested() {
	if m == nil {
		return
	}
	m.readingsIngested.Inc()
}

// RecordAlertEmitted increments the emitted alerts count per sensor type.
func (m *Metrics) RecordAlertEmitted(sensorType string) {
	if m == nil {
		return
	}
	m.alertsEmitted.WithLabelValues(strings.TrimSpace(sensorType)).Inc()
}

// RecordAlertWriteFailure increments the alert persistence failure count.
func (m *Metrics) RecordAlertWriteFailure() {
	if m == nil {
		return
	}
	m.alertWriteFailures.Inc()
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.httpRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}
