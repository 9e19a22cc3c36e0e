package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StageSelect   = "select"
	StageDispatch = "dispatch"
	StageTimeout  = "timeout"
	StagePanic    = "panic"
)

var (
	DispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_dispatch_total",
			Help: "Total number of requests dispatched per agent",
		},
		[]string{"agent"},
	)

	DispatchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_dispatch_failures_total",
			Help: "Total number of requests answered by the error handler, by failing stage",
		},
		[]string{"stage"},
	)

	DispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agent_dispatch_duration_seconds",
			Help:    "Duration of responder processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"agent"},
	)

	InteractionLogFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agent_interaction_log_failures_total",
			Help: "Total number of interaction records that could not be written",
		},
	)
)
