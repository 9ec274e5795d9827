package recruitee

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Telemetry counts upstream traffic. A nil *Telemetry records nothing.
type Telemetry struct {
	requests *prometheus.CounterVec
	retries  *prometheus.CounterVec
	wait     prometheus.Histogram
}

func NewTelemetry(reg prometheus.Registerer) *Telemetry {
	f := promauto.With(reg)
	return &Telemetry{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recruitment_metrics",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Requests sent to the recruitment API by endpoint and status.",
		}, []string{"endpoint", "status"}),
		retries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "recruitment_metrics",
			Subsystem: "upstream",
			Name:      "retries_total",
			Help:      "Retried requests to the recruitment API by endpoint.",
		}, []string{"endpoint"}),
		wait: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "recruitment_metrics",
			Subsystem: "upstream",
			Name:      "rate_limit_wait_seconds",
			Help:      "Time spent waiting for the shared request budget.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}),
	}
}

func (t *Telemetry) request(endpoint, status string) {
	if t == nil {
		return
	}
	t.requests.WithLabelValues(endpoint, status).Inc()
}

func (t *Telemetry) retry(endpoint string) {
	if t == nil {
		return
	}
	t.retries.WithLabelValues(endpoint).Inc()
}

func (t *Telemetry) observeWait(d time.Duration) {
	if t == nil {
		return
	}
	t.wait.Observe(d.Seconds())
}
