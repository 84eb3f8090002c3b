// Package metrics exposes Prometheus counters for the turn pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	TurnsTotal         *prometheus.CounterVec
	RecoveriesTotal    *prometheus.CounterVec
	TrustRewritesTotal *prometheus.CounterVec
	ToolFailuresTotal  *prometheus.CounterVec
	SessionsSweptTotal prometheus.Counter
}

// New registers the assistant's counters on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TurnsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "travel_assistant_turns_total",
			Help: "Turns processed, labelled by the routed action.",
		}, []string{"action"}),
		RecoveriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "travel_assistant_recoveries_total",
			Help: "Recovery ladder invocations, labelled by the rung that produced the reply.",
		}, []string{"rung"}),
		TrustRewritesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "travel_assistant_trust_rewrites_total",
			Help: "Trust filter rewrites, labelled by reason tag.",
		}, []string{"reason"}),
		ToolFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "travel_assistant_tool_failures_total",
			Help: "External tool call failures, labelled by tool name.",
		}, []string{"tool"}),
		SessionsSweptTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "travel_assistant_sessions_swept_total",
			Help: "Sessions removed by the expiry sweep.",
		}),
	}
}

// NewNop returns metrics backed by a throwaway registry, for tests and the CLI.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
