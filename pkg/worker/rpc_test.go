package worker

import (
	"context"
	"testing"

	"github.com/granary-io/granary/api/proto"
	"github.com/granary-io/granary/pkg/chunkstore"
	"github.com/granary-io/granary/pkg/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(t *testing.T) *Worker {
	t.Helper()
	store, err := chunkstore.New(t.TempDir(), "w1")
	require.NoError(t, err)
	return &Worker{
		cfg:    &config.WorkerConfig{WorkerID: "w1", Host: "localhost", Port: 6001},
		store:  store,
		logger: zerolog.Nop(),
	}
}

func TestStoreAndRetrieveChunk(t *testing.T) {
	w := newTestWorker(t)
	data := []byte("chunk bytes")

	storeResp, err := w.StoreChunk(context.Background(), &proto.StoreChunkRequest{
		WorkerId:  "w1",
		FileId:    "f1",
		ChunkId:   0,
		ChunkData: data,
	})
	require.NoError(t, err)
	assert.True(t, storeResp.GetSuccess())

	getResp, err := w.RetrieveChunk(context.Background(), &proto.RetrieveChunkRequest{
		WorkerId: "w1",
		FileId:   "f1",
		ChunkId:  0,
	})
	require.NoError(t, err)
	assert.True(t, getResp.GetFound())
	assert.Equal(t, data, getResp.GetChunkData())
}

func TestStoreChunkRejectsForeignWorkerID(t *testing.T) {
	w := newTestWorker(t)

	resp, err := w.StoreChunk(context.Background(), &proto.StoreChunkRequest{
		WorkerId:  "w2",
		FileId:    "f1",
		ChunkId:   0,
		ChunkData: []byte("x"),
	})
	require.NoError(t, err)
	assert.False(t, resp.GetSuccess())
	assert.Contains(t, resp.GetMessage(), "worker id mismatch")

	// Nothing was written under this worker's identity.
	_, err = w.store.Read("f1", 0)
	assert.ErrorIs(t, err, chunkstore.ErrNotFound)
}

func TestStoreChunkOverwriteIsIdempotent(t *testing.T) {
	w := newTestWorker(t)

	for _, payload := range [][]byte{[]byte("first"), []byte("first")} {
		resp, err := w.StoreChunk(context.Background(), &proto.StoreChunkRequest{
			WorkerId:  "w1",
			FileId:    "f1",
			ChunkId:   4,
			ChunkData: payload,
		})
		require.NoError(t, err)
		assert.True(t, resp.GetSuccess())
	}

	getResp, err := w.RetrieveChunk(context.Background(), &proto.RetrieveChunkRequest{
		WorkerId: "w1",
		FileId:   "f1",
		ChunkId:  4,
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), getResp.GetChunkData())
}

func TestRetrieveMissingChunk(t *testing.T) {
	w := newTestWorker(t)

	resp, err := w.RetrieveChunk(context.Background(), &proto.RetrieveChunkRequest{
		WorkerId: "w1",
		FileId:   "ghost",
		ChunkId:  0,
	})
	require.NoError(t, err)
	assert.False(t, resp.GetFound())
	assert.Empty(t, resp.GetChunkData())
}

func TestStoreEmptyChunk(t *testing.T) {
	w := newTestWorker(t)

	storeResp, err := w.StoreChunk(context.Background(), &proto.StoreChunkRequest{
		WorkerId: "w1",
		FileId:   "f1",
		ChunkId:  0,
	})
	require.NoError(t, err)
	assert.True(t, storeResp.GetSuccess())

	getResp, err := w.RetrieveChunk(context.Background(), &proto.RetrieveChunkRequest{
		WorkerId: "w1",
		FileId:   "f1",
		ChunkId:  0,
	})
	require.NoError(t, err)
	assert.True(t, getResp.GetFound())
	assert.Empty(t, getResp.GetChunkData())
}
