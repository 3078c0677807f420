package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CompensationQueueDepth is the number of loyalty reversals waiting for
	// the retry worker (gauge).
	CompensationQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "gateway",
		Name:      "compensation_queue_depth",
		Help:      "Number of queued loyalty-balance compensations",
	})

	// CompensationsDrained counts successfully delivered compensations.
	CompensationsDrained = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "compensations_drained_total",
		Help:      "The total number of delivered loyalty compensations",
	})

	// CompensationFailures counts drain attempts that left the head in place.
	CompensationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "compensation_failures_total",
		Help:      "The total number of failed compensation deliveries",
	})

	// OrphanedTickets counts purchase sagas whose compensating delete failed,
	// leaving a ticket without a loyalty ledger entry. Alert on this.
	OrphanedTickets = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "orphaned_tickets_total",
		Help:      "The total number of tickets left behind by a failed compensating delete",
	})
)
