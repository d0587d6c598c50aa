package types

import "time"

// Tunable constants for the chunk pipeline. ChunkSize is fixed at build
// time; the timing knobs have env overrides (see pkg/config).
const (
	// ChunkSize is the fixed chunk length files are split into. The last
	// chunk of a file may be shorter; a zero-byte file has no chunks.
	ChunkSize = 128 * 1024

	// LivenessTimeout is how long a worker stays a placement candidate
	// after its last heartbeat.
	LivenessTimeout = 5 * time.Second

	// HeartbeatPeriod is the interval between worker heartbeats.
	HeartbeatPeriod = 2 * time.Second

	// ReaperPeriod is the interval between registry reap passes on the
	// scheduler.
	ReaperPeriod = 5 * time.Second

	// RPCTimeout is the default deadline applied to every control-plane
	// and data-plane RPC.
	RPCTimeout = 10 * time.Second

	// ChunkQueue is the durable broker queue chunk messages travel on.
	ChunkQueue = "fileChunksQueue"
)

// WorkerInfo is a registry entry for a storage worker. A worker is active
// while now-LastHeartbeat <= LivenessTimeout.
type WorkerInfo struct {
	ID            string    `json:"id"`
	Address       string    `json:"address"`
	LastHeartbeat time.Time `json:"last_heartbeat"`
}

// FileInfo is the directory row written at upload time, before any chunk
// is placed. It records the file's existence, name and total size.
type FileInfo struct {
	FileID     string    `json:"file_id"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	UploadTime time.Time `json:"upload_time"`
}

// ChunkPlacement is the immutable decision that chunk (FileID, ChunkID)
// lives on a specific worker. Written once by the placement oracle and
// never rewritten.
type ChunkPlacement struct {
	FileID        string    `json:"file_id"`
	ChunkID       int64     `json:"chunk_id"`
	Filename      string    `json:"filename"`
	Size          int64     `json:"size"`
	WorkerID      string    `json:"worker_id"`
	WorkerAddress string    `json:"worker_address"`
	UploadTime    time.Time `json:"upload_time"`
}

// ChunkMessage is the broker payload carrying one chunk from the ingest
// pipeline to a consumer. Data is base64-encoded chunk bytes.
type ChunkMessage struct {
	FileID  string `json:"fileId"`
	ChunkID int64  `json:"chunkId"`
	Data    string `json:"data"`
}

// ChunkCount returns the number of chunks a file of the given size splits
// into: ceil(size/ChunkSize), with 0 for an empty file.
func ChunkCount(size int64) int64 {
	if size <= 0 {
		return 0
	}
	return (size + ChunkSize - 1) / ChunkSize
}
