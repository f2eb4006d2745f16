package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector HTTP 指标收集器
type Collector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	likesToggledTotal   *prometheus.CounterVec
}

// NewCollector 创建指标收集器
func NewCollector() *Collector {
	return &Collector{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		likesToggledTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feed_likes_toggled_total",
				Help: "Total number of like toggles by outcome",
			},
			[]string{"action"},
		),
	}
}

// RecordHTTPRequest 记录一次 HTTP 请求
func (c *Collector) RecordHTTPRequest(method, endpoint, status string, durationSeconds float64) {
	c.httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	c.httpRequestDuration.WithLabelValues(method, endpoint).Observe(durationSeconds)
}

// RecordLikeToggle 记录点赞/取消点赞结果
func (c *Collector) RecordLikeToggle(action string) {
	c.likesToggledTotal.WithLabelValues(action).Inc()
}
