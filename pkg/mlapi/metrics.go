package mlapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	callsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "enercast",
			Subsystem: "mlapi",
			Name:      "requests_total",
			Help:      "Total prediction service calls by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	callDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "enercast",
			Subsystem: "mlapi",
			Name:      "request_duration_seconds",
			Help:      "Round-trip time of prediction service calls",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	serviceUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "enercast",
			Subsystem: "mlapi",
			Name:      "service_up",
			Help:      "1 when the last health check succeeded, else 0",
		},
	)
)

func init() {
	prometheus.MustRegister(callsTotal, callDuration, serviceUp)
}

// observeCall records one attempted call. Disabled short circuits never make
// it here; they are not service calls.
func observeCall(op string, code Code, elapsed time.Duration) {
	outcome := "ok"
	if code != "" {
		outcome = string(code)
	}
	callsTotal.WithLabelValues(op, outcome).Inc()
	callDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

func setServiceUp(ok bool) {
	if ok {
		serviceUp.Set(1)
		return
	}
	serviceUp.Set(0)
}
