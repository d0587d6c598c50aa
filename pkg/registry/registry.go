package registry

import (
	"sync"
	"time"

	"github.com/granary-io/granary/pkg/types"
)

// Registry is the scheduler's in-memory worker directory. Entries are
// created by the first heartbeat, refreshed by subsequent heartbeats and
// removed by Reap once stale. It is process-local and non-durable: after a
// scheduler restart the directory is empty until workers heartbeat again.
//
// Active returns workers in first-heartbeat order so the placement oracle
// sees a stable ordering between calls. A worker that is reaped and later
// heartbeats again is treated as a new registration and goes to the back.
type Registry struct {
	mu       sync.RWMutex
	workers  map[string]*types.WorkerInfo
	order    []string
	liveness time.Duration
}

// New creates a registry with the given liveness timeout. A zero timeout
// falls back to types.LivenessTimeout.
func New(liveness time.Duration) *Registry {
	if liveness <= 0 {
		liveness = types.LivenessTimeout
	}
	return &Registry{
		workers:  make(map[string]*types.WorkerInfo),
		liveness: liveness,
	}
}

// Upsert inserts or refreshes a worker entry, stamping LastHeartbeat with
// now. The address is overwritten on every call since workers may move.
func (r *Registry) Upsert(workerID, address string, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.workers[workerID]; ok {
		w.Address = address
		w.LastHeartbeat = now
		return
	}

	r.workers[workerID] = &types.WorkerInfo{
		ID:            workerID,
		Address:       address,
		LastHeartbeat: now,
	}
	r.order = append(r.order, workerID)
}

// Active returns a snapshot of workers whose last heartbeat is within the
// liveness timeout, in first-heartbeat order.
func (r *Registry) Active(now time.Time) []types.WorkerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]types.WorkerInfo, 0, len(r.order))
	for _, id := range r.order {
		w := r.workers[id]
		if now.Sub(w.LastHeartbeat) <= r.liveness {
			active = append(active, *w)
		}
	}
	return active
}

// Get returns the entry for a worker id, if present.
func (r *Registry) Get(workerID string) (types.WorkerInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.workers[workerID]
	if !ok {
		return types.WorkerInfo{}, false
	}
	return *w, true
}

// Reap removes entries whose last heartbeat is older than the liveness
// timeout and returns the ids it removed.
func (r *Registry) Reap(now time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var reaped []string
	kept := r.order[:0]
	for _, id := range r.order {
		w := r.workers[id]
		if now.Sub(w.LastHeartbeat) > r.liveness {
			delete(r.workers, id)
			reaped = append(reaped, id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return reaped
}

// Len returns the number of registered workers, stale ones included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.workers)
}
