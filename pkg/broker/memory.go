package broker

import (
	"context"
	"errors"
	"sync"
)

// MemoryQueue is an in-process Publisher/Consumer used in tests and
// single-node setups. It mimics the broker contract the consumers rely
// on: FIFO order, manual settlement and nack-with-requeue redelivery.
type MemoryQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	msgs   [][]byte
	closed bool
}

// NewMemoryQueue creates an empty in-process queue.
func NewMemoryQueue() *MemoryQueue {
	q := &MemoryQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Publish enqueues one message body.
func (q *MemoryQueue) Publish(_ context.Context, body []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return errors.New("queue closed")
	}
	q.msgs = append(q.msgs, body)
	q.cond.Signal()
	return nil
}

// Consume delivers queued messages to handler until ctx is canceled or
// the queue is closed. A nacked delivery with requeue goes to the back of
// the queue.
func (q *MemoryQueue) Consume(ctx context.Context, handler func(Delivery)) error {
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		q.cond.Broadcast()
		q.mu.Unlock()
	})
	defer stop()

	for {
		q.mu.Lock()
		for len(q.msgs) == 0 && !q.closed && ctx.Err() == nil {
			q.cond.Wait()
		}
		if ctx.Err() != nil {
			q.mu.Unlock()
			return ctx.Err()
		}
		if q.closed && len(q.msgs) == 0 {
			q.mu.Unlock()
			return nil
		}
		body := q.msgs[0]
		q.msgs = q.msgs[1:]
		q.mu.Unlock()

		handler(&memoryDelivery{q: q, body: body})
	}
}

// Len reports the number of queued (undelivered) messages.
func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.msgs)
}

// Close wakes consumers; they drain remaining messages and return.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
	return nil
}

type memoryDelivery struct {
	q    *MemoryQueue
	body []byte
	once sync.Once
}

func (d *memoryDelivery) Body() []byte { return d.body }

func (d *memoryDelivery) Ack() error {
	d.once.Do(func() {})
	return nil
}

func (d *memoryDelivery) Nack(requeue bool) error {
	var err error
	d.once.Do(func() {
		if requeue {
			err = d.q.Publish(context.Background(), d.body)
		}
	})
	return err
}
