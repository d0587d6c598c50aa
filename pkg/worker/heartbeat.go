package worker

import (
	"context"
	"time"

	"github.com/granary-io/granary/api/proto"
	"github.com/granary-io/granary/pkg/types"
)

// runHeartbeat announces this worker to the scheduler once per
// HeartbeatPeriod. The first beat is sent immediately so the worker
// becomes a placement candidate without waiting out a full period.
// Failures are logged and retried on the next tick; the scheduler's
// liveness window absorbs occasional misses.
func (w *Worker) runHeartbeat(ctx context.Context) {
	client := proto.NewSchedulerServiceClient(w.schedConn)

	w.sendHeartbeat(ctx, client)

	period := w.cfg.HeartbeatPeriod
	if period <= 0 {
		period = types.HeartbeatPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.sendHeartbeat(ctx, client)
		case <-ctx.Done():
			return
		}
	}
}

func (w *Worker) sendHeartbeat(ctx context.Context, client proto.SchedulerServiceClient) {
	ctx, cancel := context.WithTimeout(ctx, types.RPCTimeout)
	defer cancel()

	resp, err := client.SendHeartbeat(ctx, &proto.HeartbeatRequest{
		WorkerId: w.cfg.WorkerID,
		Address:  w.cfg.Address(),
	})
	if err != nil {
		w.logger.Warn().Err(err).Msg("Heartbeat failed")
		return
	}
	if !resp.GetAcknowledged() {
		w.logger.Warn().Str("message", resp.GetMessage()).Msg("Heartbeat not acknowledged")
	}
}
