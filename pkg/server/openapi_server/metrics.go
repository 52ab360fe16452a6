package openapi_server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// search outcomes
const (
	resultFound       = "found"
	resultUnreachable = "unreachable"
	resultError       = "error"
)

var (
	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathfinder_searches_total",
		Help: "Number of searches by navigator and outcome.",
	}, []string{"navigator", "result"})

	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pathfinder_search_duration_seconds",
		Help:    "Duration of the searches by navigator.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"navigator"})
)

func observeSearch(navigator, result string, start time.Time) {
	searchesTotal.WithLabelValues(navigator, result).Inc()
	searchDuration.WithLabelValues(navigator).Observe(time.Since(start).Seconds())
}
