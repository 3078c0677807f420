// Package compensation implements the deferred loyalty-refund mechanism for
// ticket cancellations. A cancellation handler pushes the reversal onto the
// queue and returns immediately; a single background worker delivers queued
// reversals to the bonus service, strictly in order.
package compensation

import (
	"sync"

	"github.com/google/uuid"

	"github.com/huds2/rsoi-05/metrics"
)

// Request is one pending "reverse the loyalty effect of this ticket" action.
// The auth token is stored so the reversal carries the original caller's
// identity.
type Request struct {
	TicketUID uuid.UUID
	AuthToken string
}

// Queue is an in-memory FIFO of pending compensations. The worker is its
// only consumer. Contents are lost on restart.
type Queue struct {
	mu    sync.Mutex
	items []Request
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(r Request) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, r)
	metrics.CompensationQueueDepth.Set(float64(len(q.items)))
}

// Peek returns the head without removing it.
func (q *Queue) Peek() (Request, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Request{}, false
	}
	return q.items[0], true
}

// Pop removes the head. Only the worker calls this, after the downstream
// reversal succeeded.
func (q *Queue) Pop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return
	}
	q.items = q.items[1:]
	metrics.CompensationQueueDepth.Set(float64(len(q.items)))
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Snapshot returns a copy of the queued requests in order.
func (q *Queue) Snapshot() []Request {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Request(nil), q.items...)
}
