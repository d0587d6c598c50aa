package chunkstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Retrieve when no chunk file exists for the
// requested (fileId, chunkId).
var ErrNotFound = errors.New("chunkstore: chunk not found")

// Store is a worker's on-disk chunk engine. Chunks live under
// root/<workerId>/ as one file per chunk, named <fileId>_<chunkId>.chunk
// so different files never collide on a shared worker.
//
// Writes are plain overwrites with no fsync or rename dance: a chunk's
// durability equals the durability of the local filesystem, and an
// idempotent re-store of the same chunk is expected to land identical
// bytes.
type Store struct {
	dir string
}

// New creates the engine for one worker identity, creating its storage
// directory as needed.
func New(root, workerID string) (*Store, error) {
	dir := filepath.Join(root, workerID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the worker's storage directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) chunkPath(fileID string, chunkID int64) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%d.chunk", fileID, chunkID))
}

// Write stores chunk bytes, overwriting any previous content for the same
// (fileId, chunkId).
func (s *Store) Write(fileID string, chunkID int64, data []byte) error {
	path := s.chunkPath(fileID, chunkID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write chunk %s/%d: %w", fileID, chunkID, err)
	}
	return nil
}

// Read returns the stored bytes for (fileId, chunkId), or ErrNotFound if
// no regular file exists at the chunk path.
func (s *Store) Read(fileID string, chunkID int64) ([]byte, error) {
	path := s.chunkPath(fileID, chunkID)

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk %s/%d: %w", fileID, chunkID, err)
	}
	return data, nil
}
