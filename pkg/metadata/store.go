package metadata

import (
	"errors"

	"github.com/granary-io/granary/pkg/types"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("metadata: not found")

	// ErrDuplicateKey is returned by InsertPlacement when a placement
	// already exists for the composite (fileId, chunkId) key.
	ErrDuplicateKey = errors.New("metadata: duplicate key")
)

// Store is the typed gateway over the persistent chunk-placement table and
// the file directory. The placement oracle is the only writer of placement
// rows; the ingest pipeline writes directory rows only.
type Store interface {
	// CreateFile records a file's existence at upload time, before any
	// chunk is placed. Upsert on fileId.
	CreateFile(info *types.FileInfo) error

	// GetFile returns the directory row for a fileId.
	GetFile(fileID string) (*types.FileInfo, error)

	// FindFileByName resolves a filename to a directory row. Filenames
	// are not unique; when several files share one, the row with the
	// lowest fileId is returned.
	FindFileByName(name string) (*types.FileInfo, error)

	// InsertPlacement writes a placement row if and only if none exists
	// for its (fileId, chunkId); otherwise ErrDuplicateKey.
	InsertPlacement(p *types.ChunkPlacement) error

	// SavePlacement is insert-or-update on the composite key.
	SavePlacement(p *types.ChunkPlacement) error

	// FindPlacement returns the placement row for (fileId, chunkId).
	FindPlacement(fileID string, chunkID int64) (*types.ChunkPlacement, error)

	// FindPlacementsByFileID returns every placement for a file, ordered
	// by chunkId.
	FindPlacementsByFileID(fileID string) ([]*types.ChunkPlacement, error)

	Close() error
}
