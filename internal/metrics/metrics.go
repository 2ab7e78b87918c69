// Package metrics Prometheus 指标
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP 指标
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "filmorate_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "filmorate_api_active_requests",
			Help: "Number of requests currently being served",
		},
	)

	// 业务指标
	FriendshipOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_friendship_operations_total",
			Help: "Friendship graph mutations",
		},
		[]string{"op"}, // add, delete
	)

	LikeOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_like_operations_total",
			Help: "Like edge mutations",
		},
		[]string{"op"}, // like, unlike
	)

	EntitiesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "filmorate_entities_created_total",
			Help: "Entities created, by kind",
		},
		[]string{"kind"}, // user, film
	)
)

// RecordAPIRequest 记录一次请求
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest 请求开始时传 true，结束时传 false
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
