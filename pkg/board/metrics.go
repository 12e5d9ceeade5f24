package board

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	VotesApplied        *prometheus.CounterVec
	VoteInconsistencies prometheus.Counter
	PersistenceErrors   *prometheus.CounterVec
}

// NewMetrics registers the board counters with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		VotesApplied: f.NewCounterVec(prometheus.CounterOpts{
			Name: "forum_votes_applied_total",
			Help: "Vote writes issued, by action.",
		}, []string{"action"}),
		VoteInconsistencies: f.NewCounter(prometheus.CounterOpts{
			Name: "forum_vote_inconsistencies_total",
			Help: "Users found owning more than one vote row for a post during a recount.",
		}),
		PersistenceErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "forum_persistence_errors_total",
			Help: "Failed store calls, by operation.",
		}, []string{"op"}),
	}
}
