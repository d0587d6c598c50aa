package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/granary-io/granary/api/proto"
	"github.com/granary-io/granary/pkg/metrics"
	"github.com/granary-io/granary/pkg/placement"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// SendHeartbeat registers or refreshes a worker in the directory. Every
// call overwrites the stored address, so a worker that moved starts
// receiving traffic at its new endpoint within one heartbeat.
func (s *Scheduler) SendHeartbeat(ctx context.Context, req *proto.HeartbeatRequest) (*proto.HeartbeatResponse, error) {
	if req.GetWorkerId() == "" || req.GetAddress() == "" {
		return nil, status.Error(codes.InvalidArgument, "workerId and address are required")
	}

	now := time.Now()
	s.registry.Upsert(req.GetWorkerId(), req.GetAddress(), now)

	metrics.HeartbeatsTotal.Inc()
	metrics.WorkersActive.Set(float64(len(s.registry.Active(now))))
	s.logger.Debug().Str("worker_id", req.GetWorkerId()).Str("address", req.GetAddress()).Msg("Heartbeat received")

	return &proto.HeartbeatResponse{
		Acknowledged: true,
		Message:      "heartbeat acknowledged",
	}, nil
}

// AssignWorkerForChunk asks the placement oracle for the worker that owns
// (fileId, chunkId). Placement semantics travel back as status codes:
// Unavailable when no worker is active, AlreadyExists when the chunk was
// placed earlier, with the prior decision in the status message.
func (s *Scheduler) AssignWorkerForChunk(ctx context.Context, req *proto.AssignWorkerRequest) (*proto.AssignWorkerResponse, error) {
	if req.GetFileId() == "" || req.GetChunkId() < 0 {
		return nil, status.Error(codes.InvalidArgument, "fileId and a non-negative chunkId are required")
	}

	p, err := s.oracle.Assign(req.GetWorkerId(), req.GetFileId(), req.GetChunkId())
	if err != nil {
		var already *placement.AlreadyAssignedError
		switch {
		case errors.Is(err, placement.ErrNoActiveWorkers):
			metrics.PlacementsTotal.WithLabelValues("no_workers").Inc()
			return nil, status.Error(codes.Unavailable, err.Error())
		case errors.As(err, &already):
			metrics.PlacementsTotal.WithLabelValues("already_assigned").Inc()
			return nil, status.Error(codes.AlreadyExists, already.Error())
		default:
			s.logger.Error().Err(err).Str("file_id", req.GetFileId()).
				Int64("chunk_id", req.GetChunkId()).Msg("Placement failed")
			metrics.PlacementsTotal.WithLabelValues("error").Inc()
			return nil, status.Error(codes.Internal, "placement failed")
		}
	}

	metrics.PlacementsTotal.WithLabelValues("assigned").Inc()
	s.logger.Debug().Str("file_id", req.GetFileId()).Int64("chunk_id", req.GetChunkId()).
		Str("assigned_worker", p.WorkerID).Msg("Chunk placed")

	return &proto.AssignWorkerResponse{
		AssignedWorkerId:      p.WorkerID,
		AssignedWorkerAddress: p.WorkerAddress,
	}, nil
}
