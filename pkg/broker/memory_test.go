package broker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueueDeliversInOrder(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	require.NoError(t, q.Publish(ctx, []byte("a")))
	require.NoError(t, q.Publish(ctx, []byte("b")))
	require.NoError(t, q.Publish(ctx, []byte("c")))
	require.NoError(t, q.Close())

	var got []string
	err := q.Consume(ctx, func(d Delivery) {
		got = append(got, string(d.Body()))
		require.NoError(t, d.Ack())
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestMemoryQueueNackRequeues(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	require.NoError(t, q.Publish(ctx, []byte("x")))

	attempts := 0
	consumeCtx, cancel := context.WithCancel(ctx)
	err := q.Consume(consumeCtx, func(d Delivery) {
		attempts++
		if attempts == 1 {
			require.NoError(t, d.Nack(true))
			return
		}
		require.NoError(t, d.Ack())
		cancel()
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 0, q.Len())
}

func TestMemoryQueueNackWithoutRequeueDrops(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	require.NoError(t, q.Publish(ctx, []byte("x")))
	require.NoError(t, q.Close())

	deliveries := 0
	err := q.Consume(ctx, func(d Delivery) {
		deliveries++
		require.NoError(t, d.Nack(false))
	})
	require.NoError(t, err)
	assert.Equal(t, 1, deliveries)
}

func TestMemoryQueueConsumeUnblocksOnCancel(t *testing.T) {
	q := NewMemoryQueue()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- q.Consume(ctx, func(Delivery) {})
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("consume did not return after cancel")
	}
}
