package consumer

import (
	"context"
	"fmt"

	"github.com/granary-io/granary/api/proto"
	"github.com/granary-io/granary/pkg/placement"
	"github.com/granary-io/granary/pkg/types"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RemoteAssigner calls the scheduler's AssignWorkerForChunk RPC and
// translates its status codes back into placement semantics:
// AlreadyExists carries the prior decision in the status message,
// Unavailable means no active workers.
type RemoteAssigner struct {
	client   proto.SchedulerServiceClient
	workerID string
}

// NewRemoteAssigner wraps a scheduler connection for this worker.
func NewRemoteAssigner(conn *grpc.ClientConn, workerID string) *RemoteAssigner {
	return &RemoteAssigner{client: proto.NewSchedulerServiceClient(conn), workerID: workerID}
}

func (a *RemoteAssigner) Assign(ctx context.Context, fileID string, chunkID int64) (Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, types.RPCTimeout)
	defer cancel()

	resp, err := a.client.AssignWorkerForChunk(ctx, &proto.AssignWorkerRequest{
		WorkerId: a.workerID,
		FileId:   fileID,
		ChunkId:  chunkID,
	})
	if err != nil {
		st, ok := status.FromError(err)
		if ok {
			switch st.Code() {
			case codes.AlreadyExists:
				if prior, ok := placement.ParseAlreadyAssigned(st.Message()); ok {
					return Assignment{WorkerID: prior.WorkerID, Address: prior.Address, Already: true}, nil
				}
				return Assignment{}, fmt.Errorf("unparseable prior placement in %q", st.Message())
			case codes.Unavailable:
				return Assignment{}, placement.ErrNoActiveWorkers
			}
		}
		return Assignment{}, fmt.Errorf("assignment rpc failed: %w", err)
	}

	return Assignment{
		WorkerID: resp.GetAssignedWorkerId(),
		Address:  resp.GetAssignedWorkerAddress(),
	}, nil
}
