package broker

import "context"

// Publisher sends chunk payloads to the queue.
type Publisher interface {
	// Publish enqueues one message body.
	Publish(ctx context.Context, body []byte) error
	Close() error
}

// Delivery is a single received message. Handlers must settle every
// delivery exactly once: Ack to drop it, Nack with requeue to have the
// broker redeliver it later.
type Delivery interface {
	Body() []byte
	Ack() error
	Nack(requeue bool) error
}

// Consumer drives the consume loop. Consume blocks, invoking handler for
// each delivery in arrival order, until ctx is canceled or the underlying
// channel closes.
type Consumer interface {
	Consume(ctx context.Context, handler func(Delivery)) error
	Close() error
}
