package ingest

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/granary-io/granary/pkg/broker"
	"github.com/granary-io/granary/pkg/metadata"
	"github.com/granary-io/granary/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRetriever struct {
	chunks map[string][]byte
	err    error
}

func newFakeRetriever() *fakeRetriever {
	return &fakeRetriever{chunks: make(map[string][]byte)}
}

func chunkKey(fileID string, chunkID int64) string {
	return fmt.Sprintf("%s/%d", fileID, chunkID)
}

func (f *fakeRetriever) RetrieveChunk(_ context.Context, _, _, fileID string, chunkID int64) ([]byte, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	data, ok := f.chunks[chunkKey(fileID, chunkID)]
	return data, ok, nil
}

func newTestServer(t *testing.T) (*Server, metadata.Store, *broker.MemoryQueue, *fakeRetriever) {
	t.Helper()
	store, err := metadata.NewBoltStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	queue := broker.NewMemoryQueue()
	retriever := newFakeRetriever()
	return NewServer(store, queue, retriever), store, queue, retriever
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/files/uploadFile", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// drainQueue plays the consumer's role: it decodes every queued chunk
// message into the retriever's map and records a placement on w1.
func drainQueue(t *testing.T, queue *broker.MemoryQueue, store metadata.Store, retriever *fakeRetriever) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = queue.Consume(ctx, func(d broker.Delivery) {
			var msg types.ChunkMessage
			require.NoError(t, json.Unmarshal(d.Body(), &msg))
			data, err := base64.StdEncoding.DecodeString(msg.Data)
			require.NoError(t, err)
			retriever.chunks[chunkKey(msg.FileID, msg.ChunkID)] = data
			require.NoError(t, store.SavePlacement(&types.ChunkPlacement{
				FileID:        msg.FileID,
				ChunkID:       msg.ChunkID,
				WorkerID:      "w1",
				WorkerAddress: "localhost:6000",
				UploadTime:    time.Now().UTC(),
			}))
			_ = d.Ack()
			if queue.Len() == 0 {
				cancel()
			}
		})
	}()

	if queue.Len() == 0 {
		cancel()
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("queue did not drain")
	}
}

func TestUploadReportsChunkCount(t *testing.T) {
	srv, store, queue, _ := newTestServer(t)

	content := make([]byte, 2*types.ChunkSize+17)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "report.bin", content))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Upload successful. Total chunks sent: 3", rec.Body.String())
	assert.Equal(t, 3, queue.Len())

	info, err := store.FindFileByName("report.bin")
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), info.Size)
}

func TestUploadEmptyFile(t *testing.T) {
	srv, store, queue, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "empty.bin", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Upload successful. Total chunks sent: 0", rec.Body.String())
	assert.Equal(t, 0, queue.Len())

	// The directory row still exists, so the name resolves.
	_, err := store.FindFileByName("empty.bin")
	assert.NoError(t, err)
}

func TestUploadWithoutFileField(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/files/uploadFile", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoundTrip(t *testing.T) {
	sizes := []int64{0, 1, types.ChunkSize - 1, types.ChunkSize, types.ChunkSize + 1, 10 * types.ChunkSize}

	for _, size := range sizes {
		t.Run(fmt.Sprintf("size_%d", size), func(t *testing.T) {
			srv, store, queue, retriever := newTestServer(t)

			content := make([]byte, size)
			_, _ = rand.New(rand.NewSource(size)).Read(content)
			name := fmt.Sprintf("file_%d.bin", size)

			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, uploadRequest(t, name, content))
			require.Equal(t, http.StatusOK, rec.Code)

			drainQueue(t, queue, store, retriever)

			rec = httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/getFile?name="+name, nil))
			require.Equal(t, http.StatusOK, rec.Code)

			assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
			assert.Equal(t, "attachment; filename="+name, rec.Header().Get("Content-Disposition"))
			got, err := io.ReadAll(rec.Body)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(content, got), "downloaded bytes differ from uploaded")
		})
	}
}

func TestDownloadUnknownName(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/getFile?name=ghost.bin", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDownloadMissingNameParam(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/getFile", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadLostChunkIs500(t *testing.T) {
	srv, store, queue, retriever := newTestServer(t)

	content := make([]byte, 3*types.ChunkSize)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "fragile.bin", content))
	require.Equal(t, http.StatusOK, rec.Code)

	drainQueue(t, queue, store, retriever)

	// Lose one chunk on the worker; the placement row survives.
	info, err := store.FindFileByName("fragile.bin")
	require.NoError(t, err)
	delete(retriever.chunks, chunkKey(info.FileID, 1))

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/getFile?name=fragile.bin", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDownloadIncompleteFileIs500(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	// Chunks still in flight: directory row exists, placements do not.
	content := make([]byte, types.ChunkSize)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "inflight.bin", content))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/getFile?name=inflight.bin", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/files/uploadFile", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "POST"))
}

func TestHealthzEndpoint(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
