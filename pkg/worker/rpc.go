package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/granary-io/granary/api/proto"
	"github.com/granary-io/granary/pkg/chunkstore"
	"github.com/granary-io/granary/pkg/metrics"
)

// StoreChunk writes chunk bytes to the local disk engine. The request's
// workerId must match this worker's identity: a mismatch means the
// caller is acting on a stale placement, and silently storing under the
// wrong identity would strand the chunk. I/O failures travel in-band as
// success=false rather than RPC errors.
func (w *Worker) StoreChunk(ctx context.Context, req *proto.StoreChunkRequest) (*proto.StoreChunkResponse, error) {
	if req.GetWorkerId() != w.cfg.WorkerID {
		w.logger.Warn().Str("requested_worker", req.GetWorkerId()).
			Str("file_id", req.GetFileId()).Int64("chunk_id", req.GetChunkId()).
			Msg("Rejecting store for another worker's identity")
		return &proto.StoreChunkResponse{
			Success: false,
			Message: fmt.Sprintf("worker id mismatch: request for %s, this is %s", req.GetWorkerId(), w.cfg.WorkerID),
		}, nil
	}

	if err := w.store.Write(req.GetFileId(), req.GetChunkId(), req.GetChunkData()); err != nil {
		w.logger.Error().Err(err).Str("file_id", req.GetFileId()).
			Int64("chunk_id", req.GetChunkId()).Msg("Chunk write failed")
		return &proto.StoreChunkResponse{Success: false, Message: err.Error()}, nil
	}

	metrics.ChunksStored.Inc()
	w.logger.Debug().Str("file_id", req.GetFileId()).Int64("chunk_id", req.GetChunkId()).
		Int("bytes", len(req.GetChunkData())).Msg("Chunk stored")
	return &proto.StoreChunkResponse{Success: true, Message: "chunk stored"}, nil
}

// RetrieveChunk returns the stored bytes for (fileId, chunkId). A
// missing chunk and a failed read both come back as found=false; the
// caller cannot repair either.
func (w *Worker) RetrieveChunk(ctx context.Context, req *proto.RetrieveChunkRequest) (*proto.RetrieveChunkResponse, error) {
	data, err := w.store.Read(req.GetFileId(), req.GetChunkId())
	if err != nil {
		if !errors.Is(err, chunkstore.ErrNotFound) {
			w.logger.Error().Err(err).Str("file_id", req.GetFileId()).
				Int64("chunk_id", req.GetChunkId()).Msg("Chunk read failed")
		}
		metrics.ChunksRetrieved.WithLabelValues("false").Inc()
		return &proto.RetrieveChunkResponse{Found: false}, nil
	}

	metrics.ChunksRetrieved.WithLabelValues("true").Inc()
	return &proto.RetrieveChunkResponse{ChunkData: data, Found: true}, nil
}
