package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	analysis *prometheus.HistogramVec
	clones   *prometheus.CounterVec
}

// newMetrics registers the server collectors on reg. repos reports the number
// of registered clones at scrape time.
func newMetrics(reg prometheus.Registerer, repos func() float64) *metrics {
	m := &metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gitstats",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gitstats",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		analysis: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gitstats",
			Name:      "analysis_duration_seconds",
			Help:      "Time spent computing statistics.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"statistic", "outcome"}),
		clones: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gitstats",
			Name:      "clones_total",
			Help:      "Clone attempts by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.requests,
		m.duration,
		m.analysis,
		m.clones,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "gitstats",
			Name:      "registered_repos",
			Help:      "Clones currently registered.",
		}, repos),
	)

	return m
}

func outcomeLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
