package notify

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

var (
	displayOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "toast_display_outcomes_total",
			Help: "Display sessions by outcome and dismissal reason",
		},
		[]string{"outcome", "reason"},
	)

	displayWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "toast_display_wait_seconds",
			Help:    "Time from submission until a display session ended",
			Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 25, 30, 60},
		},
	)

	submitErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "toast_submit_errors_total",
			Help: "Submissions rejected by the delivery service",
		},
	)

	breakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "toast_delivery_breaker_state",
			Help: "Delivery circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

func recordOutcome(o Outcome, waited time.Duration) {
	reason := ""
	if o.Kind == OutcomeDismissed {
		reason = o.Reason.String()
	}
	displayOutcomes.WithLabelValues(o.Kind.String(), reason).Inc()
	displayWait.Observe(waited.Seconds())
}

func recordBreakerState(state gobreaker.State) {
	var value float64
	switch state {
	case gobreaker.StateClosed:
		value = 0
	case gobreaker.StateHalfOpen:
		value = 1
	case gobreaker.StateOpen:
		value = 2
	}
	breakerState.Set(value)
}

// WriteMetricsFile writes all registered metrics in the text exposition
// format, for node_exporter's textfile collector.
func WriteMetricsFile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
