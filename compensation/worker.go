package compensation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/huds2/rsoi-05/metrics"
)

// Refunder delivers one loyalty reversal downstream.
type Refunder interface {
	Refund(ctx context.Context, authToken string, ticketUID uuid.UUID) error
}

// Worker drains the queue on a fixed interval. A failed delivery stops the
// current cycle and leaves the failed entry at the head, so reversals are
// applied in submission order even across retries. A persistently failing
// head blocks everything behind it until it goes through.
type Worker struct {
	queue    *Queue
	refunder Refunder
	interval time.Duration
}

func NewWorker(queue *Queue, refunder Refunder, interval time.Duration) *Worker {
	return &Worker{
		queue:    queue,
		refunder: refunder,
		interval: interval,
	}
}

// Run blocks until ctx is canceled. Start it once, at service startup.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain delivers queued compensations from the head until the queue is empty
// or a delivery fails. The queue lock is never held across the network call;
// the head is re-read each iteration so concurrent pushes interleave safely.
func (w *Worker) drain(ctx context.Context) {
	for {
		head, ok := w.queue.Peek()
		if !ok {
			return
		}

		logrus.WithField("ticket_uid", head.TicketUID).Info("sending queued compensation")
		if err := w.refunder.Refund(ctx, head.AuthToken, head.TicketUID); err != nil {
			metrics.CompensationFailures.Inc()
			logrus.WithError(err).
				WithField("ticket_uid", head.TicketUID).
				Warn("compensation failed, will retry next cycle")
			return
		}

		w.queue.Pop()
		metrics.CompensationsDrained.Inc()
	}
}
