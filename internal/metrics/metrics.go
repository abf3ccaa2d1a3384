// Package metrics exposes the service's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kindnesschain_acts_created_total",
		Help: "Number of kindness acts created.",
	})

	Reactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kindnesschain_reactions_total",
		Help: "Number of reactions recorded, by type.",
	}, []string{"type"})

	ChallengeJoins = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kindnesschain_challenge_joins_total",
		Help: "Number of successful challenge joins.",
	})

	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kindnesschain_registrations_total",
		Help: "Number of user registrations.",
	})
)
