package metadata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/granary-io/granary/pkg/types"
	bolt "go.etcd.io/bbolt"
)

var (
	// Bucket names
	bucketFiles      = []byte("files")
	bucketPlacements = []byte("placements")
)

// BoltStore implements Store using BoltDB. Directory rows live in the
// files bucket keyed by fileId; placement rows live in the placements
// bucket keyed by fileId/chunkId so a cursor walks a file's chunks in
// chunkId order. Bolt's single-writer transactions give the composite-key
// uniqueness that serializes placement decisions.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (creating if needed) the metadata database under
// dataDir.
func NewBoltStore(dataDir string) (*BoltStore, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "granary.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketFiles, bucketPlacements} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// placementKey orders a file's placements by chunkId under a common
// fileId prefix.
func placementKey(fileID string, chunkID int64) []byte {
	return []byte(fmt.Sprintf("%s/%020d", fileID, chunkID))
}

func (s *BoltStore) CreateFile(info *types.FileInfo) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFiles)
		data, err := json.Marshal(info)
		if err != nil {
			return err
		}
		return b.Put([]byte(info.FileID), data)
	})
}

func (s *BoltStore) GetFile(fileID string) (*types.FileInfo, error) {
	var info types.FileInfo
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFiles)
		data := b.Get([]byte(fileID))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *BoltStore) FindFileByName(name string) (*types.FileInfo, error) {
	var found *types.FileInfo
	err := s.db.View(func(tx *bolt.Tx) error {
		// Keys are sorted, so the first match has the lowest fileId.
		c := tx.Bucket(bucketFiles).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var info types.FileInfo
			if err := json.Unmarshal(v, &info); err != nil {
				return err
			}
			if info.Filename == name {
				found = &info
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (s *BoltStore) InsertPlacement(p *types.ChunkPlacement) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPlacements)
		key := placementKey(p.FileID, p.ChunkID)
		if b.Get(key) != nil {
			return ErrDuplicateKey
		}
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

func (s *BoltStore) SavePlacement(p *types.ChunkPlacement) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPlacements)
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		return b.Put(placementKey(p.FileID, p.ChunkID), data)
	})
}

func (s *BoltStore) FindPlacement(fileID string, chunkID int64) (*types.ChunkPlacement, error) {
	var p types.ChunkPlacement
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPlacements)
		data := b.Get(placementKey(fileID, chunkID))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *BoltStore) FindPlacementsByFileID(fileID string) ([]*types.ChunkPlacement, error) {
	var placements []*types.ChunkPlacement
	prefix := []byte(fileID + "/")
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketPlacements).Cursor()
		for k, v := c.Seek(prefix); k != nil && len(k) > len(prefix) && string(k[:len(prefix)]) == string(prefix); k, v = c.Next() {
			var p types.ChunkPlacement
			if err := json.Unmarshal(v, &p); err != nil {
				return err
			}
			placements = append(placements, &p)
		}
		return nil
	})
	return placements, err
}
