// Package metrics provides Prometheus metrics for the blog service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

var (
	// HTTPRequestsTotal counts handled requests by route and status class.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// LoginAttemptsTotal counts login attempts by result.
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Total number of login attempts",
		},
		[]string{"result"},
	)

	// PostsPublishedTotal counts Draft to Published transitions.
	PostsPublishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_published_total",
			Help:      "Total number of posts published",
		},
	)

	// NotificationsTotal counts outbox rows by terminal status.
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Total number of notifications by status",
		},
		[]string{"status"},
	)

	// OutboxBatchSize observes how many rows a dispatch run claimed.
	OutboxBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "outbox_batch_size",
			Help:      "Distribution of claimed outbox batch sizes",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)
)

// RecordRequest records a handled HTTP request.
func RecordRequest(method, route, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration)
}

// RecordLogin records a login attempt; result is success, failure or inactive.
func RecordLogin(result string) {
	LoginAttemptsTotal.WithLabelValues(result).Inc()
}

// RecordPublish records a published post and how many notifications it queued.
func RecordPublish(queued int) {
	PostsPublishedTotal.Inc()
	NotificationsTotal.WithLabelValues("queued").Add(float64(queued))
}

// RecordDispatch records the outcome of one outbox run.
func RecordDispatch(claimed, sent, failed int) {
	OutboxBatchSize.Observe(float64(claimed))
	NotificationsTotal.WithLabelValues("sent").Add(float64(sent))
	NotificationsTotal.WithLabelValues("failed").Add(float64(failed))
}
