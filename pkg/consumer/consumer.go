package consumer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/granary-io/granary/pkg/broker"
	"github.com/granary-io/granary/pkg/log"
	"github.com/granary-io/granary/pkg/metrics"
	"github.com/granary-io/granary/pkg/placement"
	"github.com/granary-io/granary/pkg/types"
	"github.com/rs/zerolog"
)

// Assignment is the oracle's answer for one chunk: the worker that owns
// it. Already is set when the decision predates this call (redelivery).
type Assignment struct {
	WorkerID string
	Address  string
	Already  bool
}

// Assigner asks the placement oracle where a chunk belongs.
type Assigner interface {
	Assign(ctx context.Context, fileID string, chunkID int64) (Assignment, error)
}

// ChunkWriter stores chunk bytes on the local disk engine.
type ChunkWriter interface {
	Write(fileID string, chunkID int64, data []byte) error
}

// Forwarder pushes chunk bytes to the worker at address.
type Forwarder interface {
	StoreChunk(ctx context.Context, address, workerID, fileID string, chunkID int64, data []byte) error
}

// Consumer drains the chunk queue on one worker. For every message it
// asks the oracle, then stores the chunk locally or forwards it to the
// assigned peer. Delivery is at-least-once: a message is acked only
// after the store reports success, so every failure path nacks for
// redelivery except malformed payloads, which are acked and dropped.
//
// Single-threaded per worker; the broker's prefetch limit provides
// backpressure upstream.
type Consumer struct {
	workerID string
	assigner Assigner
	writer   ChunkWriter
	forward  Forwarder
	backoff  time.Duration
	logger   zerolog.Logger
}

// New creates a consumer bound to this worker's identity.
func New(workerID string, assigner Assigner, writer ChunkWriter, forward Forwarder) *Consumer {
	return &Consumer{
		workerID: workerID,
		assigner: assigner,
		writer:   writer,
		forward:  forward,
		backoff:  time.Second,
		logger:   log.WithComponent("consumer").With().Str("worker_id", workerID).Logger(),
	}
}

// Run blocks consuming from source until ctx is canceled or the source
// closes.
func (c *Consumer) Run(ctx context.Context, source broker.Consumer) error {
	c.logger.Info().Msg("Chunk consumer started")
	return source.Consume(ctx, func(d broker.Delivery) {
		c.handle(ctx, d)
	})
}

func (c *Consumer) handle(ctx context.Context, d broker.Delivery) {
	var msg types.ChunkMessage
	if err := json.Unmarshal(d.Body(), &msg); err != nil {
		// Poison message: redelivery cannot fix a malformed payload.
		c.logger.Warn().Err(err).Msg("Dropping malformed chunk message")
		metrics.ChunksConsumed.WithLabelValues("poison").Inc()
		_ = d.Ack()
		return
	}

	data, err := base64.StdEncoding.DecodeString(msg.Data)
	if err != nil {
		c.logger.Warn().Err(err).Str("file_id", msg.FileID).Int64("chunk_id", msg.ChunkID).
			Msg("Dropping chunk message with invalid base64 payload")
		metrics.ChunksConsumed.WithLabelValues("poison").Inc()
		_ = d.Ack()
		return
	}

	assignment, err := c.assigner.Assign(ctx, msg.FileID, msg.ChunkID)
	if err != nil {
		if errors.Is(err, placement.ErrNoActiveWorkers) {
			// Registry may not yet reflect recently started workers; give
			// it a beat before the broker redelivers.
			c.logger.Warn().Str("file_id", msg.FileID).Int64("chunk_id", msg.ChunkID).
				Msg("No active workers, requeueing chunk")
			metrics.ChunksConsumed.WithLabelValues("requeued").Inc()
			c.sleep(ctx)
			_ = d.Nack(true)
			return
		}
		c.logger.Error().Err(err).Str("file_id", msg.FileID).Int64("chunk_id", msg.ChunkID).
			Msg("Placement request failed, requeueing chunk")
		metrics.ChunksConsumed.WithLabelValues("requeued").Inc()
		_ = d.Nack(true)
		return
	}

	if err := c.store(ctx, assignment, msg.FileID, msg.ChunkID, data); err != nil {
		c.logger.Error().Err(err).Str("file_id", msg.FileID).Int64("chunk_id", msg.ChunkID).
			Str("assigned_worker", assignment.WorkerID).Msg("Chunk store failed, requeueing")
		metrics.ChunksConsumed.WithLabelValues("requeued").Inc()
		_ = d.Nack(true)
		return
	}

	if assignment.WorkerID == c.workerID {
		metrics.ChunksConsumed.WithLabelValues("stored_local").Inc()
	} else {
		metrics.ChunksConsumed.WithLabelValues("forwarded").Inc()
	}
	_ = d.Ack()
}

// store honors the assignment: local write when the chunk is ours,
// peer-forward otherwise. Redeliveries take the same two paths against
// the recorded placement.
func (c *Consumer) store(ctx context.Context, a Assignment, fileID string, chunkID int64, data []byte) error {
	if a.WorkerID == c.workerID {
		if err := c.writer.Write(fileID, chunkID, data); err != nil {
			return err
		}
		metrics.ChunksStored.Inc()
		c.logger.Debug().Str("file_id", fileID).Int64("chunk_id", chunkID).Msg("Chunk stored locally")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, types.RPCTimeout)
	defer cancel()
	if err := c.forward.StoreChunk(ctx, a.Address, a.WorkerID, fileID, chunkID, data); err != nil {
		return err
	}
	metrics.ChunksForwarded.Inc()
	c.logger.Debug().Str("file_id", fileID).Int64("chunk_id", chunkID).
		Str("peer", a.Address).Msg("Chunk forwarded to assigned worker")
	return nil
}

func (c *Consumer) sleep(ctx context.Context) {
	select {
	case <-time.After(c.backoff):
	case <-ctx.Done():
	}
}
