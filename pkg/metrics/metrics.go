package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	ScheduledTasksFired  prometheus.Counter
	ScheduledTasksFailed prometheus.Counter
}

// New регистрирует и возвращает метрики сервиса
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		ScheduledTasksFired: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "scheduled_tasks_fired_total",
			Help:        "Total number of deferred tasks executed by the worker",
			ConstLabels: labels,
		}),

		ScheduledTasksFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "scheduled_tasks_failed_total",
			Help:        "Total number of deferred task executions that returned an error",
			ConstLabels: labels,
		}),
	}
}
