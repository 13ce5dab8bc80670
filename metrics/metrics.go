// Package metrics exposes Prometheus counters for the authentication flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "paypulse"

// Metrics holds the collectors updated by the auth service
type Metrics struct {
	ChallengesIssued prometheus.Counter
	LoginAttempts    *prometheus.CounterVec
	Authorizations   *prometheus.CounterVec
}

// New registers the auth collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ChallengesIssued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "challenges_issued_total",
			Help:      "Number of login challenges handed out.",
		}),
		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		Authorizations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authorizations_total",
			Help:      "Bearer token checks by result.",
		}, []string{"result"}),
	}
}

// Nop returns collectors that are not registered anywhere
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}
