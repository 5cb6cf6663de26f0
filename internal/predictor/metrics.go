package predictor

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	predictionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "enercast",
			Subsystem: "model",
			Name:      "predictions_total",
			Help:      "Total prediction points served",
		},
	)

	modelLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "enercast",
			Subsystem: "model",
			Name:      "loaded",
			Help:      "1 when a model artifact is loaded",
		},
	)
)

func init() {
	prometheus.MustRegister(predictionsTotal, modelLoaded)
}

func setModelLoaded(ok bool) {
	if ok {
		modelLoaded.Set(1)
		return
	}
	modelLoaded.Set(0)
}
