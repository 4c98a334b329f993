package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dealdesk_dashboard_cache_hits_total",
		Help: "Dashboard responses served from the cache",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dealdesk_dashboard_cache_misses_total",
		Help: "Dashboard requests that required a rebuild",
	})
	buildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dealdesk_dashboard_build_seconds",
		Help:    "Time spent rebuilding the dashboard payload",
		Buckets: prometheus.DefBuckets,
	})
)
