package healthcheck

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	healthCheckDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "toast_health_check_duration_seconds",
			Help:    "Duration of environment checks in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"check", "status"},
	)

	healthCheckTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toast_health_check_total",
			Help: "Total number of environment checks performed",
		},
		[]string{"check", "status"},
	)
)

// recordHealthCheck records metrics for a check result.
func recordHealthCheck(result Result) {
	labels := prometheus.Labels{
		"check":  result.Name,
		"status": string(result.Status),
	}
	healthCheckDuration.With(labels).Observe(result.Duration.Seconds())
	healthCheckTotal.With(labels).Inc()
}
