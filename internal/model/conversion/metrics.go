package conversion

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var counterFallback = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "expensedash",
		Subsystem: "conversion",
		Name:      "fallback_total",
		Help:      "Conversions that fell back to unity rate because no rate was available.",
	},
	[]string{"currency"},
)

func observeFallback(code string) {
	counterFallback.WithLabelValues(code).Inc()
}
