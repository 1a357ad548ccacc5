package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// AuthAttempts counts auth operations by outcome.
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Auth operations by outcome",
		},
		[]string{"op", "outcome"}, // op: register|login|refresh, outcome: ok|denied
	)

	// SessionsPruned counts expired refresh tokens swept from session lists.
	SessionsPruned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_pruned_total",
			Help: "Expired refresh tokens removed from session lists",
		},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(AuthAttempts)
	prometheus.MustRegister(SessionsPruned)
	prometheus.MustRegister(WorkerQueueDepth)
}
