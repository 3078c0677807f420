package compensation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type refunderStub struct {
	mu       sync.Mutex
	failing  map[uuid.UUID]bool
	refunded []uuid.UUID
}

func (r *refunderStub) Refund(_ context.Context, _ string, ticketUID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing[ticketUID] {
		return errors.New("bonus service unavailable")
	}
	r.refunded = append(r.refunded, ticketUID)
	return nil
}

func (r *refunderStub) setFailing(id uuid.UUID, failing bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing == nil {
		r.failing = map[uuid.UUID]bool{}
	}
	r.failing[id] = failing
}

func (r *refunderStub) refundedIDs() []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uuid.UUID(nil), r.refunded...)
}

func TestQueueIsFIFO(t *testing.T) {
	q := NewQueue()
	first, second := uuid.New(), uuid.New()

	q.Push(Request{TicketUID: first})
	q.Push(Request{TicketUID: second})

	head, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, first, head.TicketUID)

	q.Pop()
	head, ok = q.Peek()
	require.True(t, ok)
	assert.Equal(t, second, head.TicketUID)

	q.Pop()
	_, ok = q.Peek()
	assert.False(t, ok)
}

func TestDrainStopsAtFailingHead(t *testing.T) {
	q := NewQueue()
	stub := &refunderStub{}
	w := NewWorker(q, stub, time.Second)

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	stub.setFailing(ids[0], true)
	for _, id := range ids {
		q.Push(Request{TicketUID: id, AuthToken: "Bearer token"})
	}

	// head fails: nothing may be delivered or reordered
	w.drain(context.Background())
	assert.Empty(t, stub.refundedIDs())
	require.Equal(t, 3, q.Len())
	snapshot := q.Snapshot()
	for i, id := range ids {
		assert.Equal(t, id, snapshot[i].TicketUID)
	}

	// once the head succeeds, a single cycle drains everything in order
	stub.setFailing(ids[0], false)
	w.drain(context.Background())
	assert.Equal(t, ids, stub.refundedIDs())
	assert.Equal(t, 0, q.Len())
}

func TestDrainOnEmptyQueueIsNoop(t *testing.T) {
	q := NewQueue()
	stub := &refunderStub{}
	w := NewWorker(q, stub, time.Second)

	w.drain(context.Background())
	assert.Empty(t, stub.refundedIDs())
}

func TestRunDrainsPeriodicallyAndStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewQueue()
	stub := &refunderStub{}
	w := NewWorker(q, stub, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	id := uuid.New()
	q.Push(Request{TicketUID: id, AuthToken: "Bearer token"})

	assert.Eventually(t, func() bool {
		return q.Len() == 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []uuid.UUID{id}, stub.refundedIDs())

	cancel()
	require.NoError(t, <-done)
}
