package placement

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/granary-io/granary/pkg/metadata"
	"github.com/granary-io/granary/pkg/registry"
	"github.com/granary-io/granary/pkg/types"
)

// ErrNoActiveWorkers is returned when no worker has heartbeated within the
// liveness timeout. Callers treat it as transient: the registry may not
// yet reflect recently started workers.
var ErrNoActiveWorkers = errors.New("placement: no active workers")

// AlreadyAssignedError reports that a chunk already has an immutable
// placement. It carries the prior decision so the caller can honor it.
type AlreadyAssignedError struct {
	WorkerID string
	Address  string
}

func (e *AlreadyAssignedError) Error() string {
	return fmt.Sprintf("chunk already assigned to worker %s at %s", e.WorkerID, e.Address)
}

// Oracle selects a worker for each (fileId, chunkId) and records the
// decision. It is the only writer of placement rows. Selection is
// round-robin over the active worker list: the counter is never reset, so
// membership churn merely skews distribution without affecting
// correctness.
type Oracle struct {
	registry *registry.Registry
	store    metadata.Store
	next     atomic.Uint64
}

// NewOracle creates an oracle over the given registry and metadata store.
func NewOracle(reg *registry.Registry, store metadata.Store) *Oracle {
	return &Oracle{registry: reg, store: store}
}

// Assign returns the placement for (fileID, chunkID), creating one if none
// exists. An existing placement is never overwritten: redeliveries get an
// AlreadyAssignedError carrying the prior decision. requesterID is the
// worker asking; it carries no weight in selection.
func (o *Oracle) Assign(requesterID, fileID string, chunkID int64) (*types.ChunkPlacement, error) {
	now := time.Now()

	active := o.registry.Active(now)
	if len(active) == 0 {
		return nil, ErrNoActiveWorkers
	}

	if existing, err := o.store.FindPlacement(fileID, chunkID); err == nil {
		return nil, &AlreadyAssignedError{WorkerID: existing.WorkerID, Address: existing.WorkerAddress}
	} else if !errors.Is(err, metadata.ErrNotFound) {
		return nil, fmt.Errorf("placement lookup failed: %w", err)
	}

	chosen := active[(o.next.Add(1)-1)%uint64(len(active))]

	p := &types.ChunkPlacement{
		FileID:        fileID,
		ChunkID:       chunkID,
		WorkerID:      chosen.ID,
		WorkerAddress: chosen.Address,
		UploadTime:    now.UTC(),
	}
	// Mirror the directory row's filename and size when it exists; the
	// upload path writes it before publishing any chunk. Only a missing
	// row is tolerable here — a failing store must not produce a
	// placement with blank directory fields.
	if info, err := o.store.GetFile(fileID); err == nil {
		p.Filename = info.Filename
		p.Size = info.Size
	} else if !errors.Is(err, metadata.ErrNotFound) {
		return nil, fmt.Errorf("directory lookup failed: %w", err)
	}

	if err := o.store.InsertPlacement(p); err != nil {
		if errors.Is(err, metadata.ErrDuplicateKey) {
			// Lost the insert race; yield to the winner.
			winner, rerr := o.store.FindPlacement(fileID, chunkID)
			if rerr != nil {
				return nil, fmt.Errorf("placement conflict re-read failed: %w", rerr)
			}
			return nil, &AlreadyAssignedError{WorkerID: winner.WorkerID, Address: winner.WorkerAddress}
		}
		return nil, fmt.Errorf("failed to persist placement: %w", err)
	}

	return p, nil
}
