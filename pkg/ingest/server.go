package ingest

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/granary-io/granary/pkg/broker"
	"github.com/granary-io/granary/pkg/log"
	"github.com/granary-io/granary/pkg/metadata"
	"github.com/granary-io/granary/pkg/metrics"
	"github.com/granary-io/granary/pkg/types"
	"github.com/rs/zerolog"
)

// ChunkRetriever fetches chunk bytes from the worker at address.
// Satisfied by peers.Pool.
type ChunkRetriever interface {
	RetrieveChunk(ctx context.Context, address, workerID, fileID string, chunkID int64) ([]byte, bool, error)
}

// Server is the scheduler's HTTP ingress: uploads are chunked and
// published to the broker, downloads are reassembled from the workers
// recorded in the placement table.
type Server struct {
	store     metadata.Store
	publisher broker.Publisher
	retriever ChunkRetriever
	mux       *http.ServeMux
	server    *http.Server
	logger    zerolog.Logger
}

// NewServer wires the ingress over its collaborators.
func NewServer(store metadata.Store, publisher broker.Publisher, retriever ChunkRetriever) *Server {
	s := &Server{
		store:     store,
		publisher: publisher,
		retriever: retriever,
		mux:       http.NewServeMux(),
		logger:    log.WithComponent("ingest"),
	}

	s.mux.HandleFunc("/files/uploadFile", s.handleUpload)
	s.mux.HandleFunc("/files/getFile", s.handleDownload)
	s.mux.HandleFunc("/healthz", metrics.HealthHandler())
	s.mux.Handle("/metrics", metrics.Handler())

	return s
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return corsMiddleware(s.mux)
}

// Start serves HTTP on addr until ctx is canceled, then drains with a
// bounded grace period.
func (s *Server) Start(ctx context.Context, addr string) error {
	s.server = &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		ReadTimeout: 5 * time.Minute, // large uploads stream through here
		IdleTimeout: 120 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.logger.Info().Str("addr", addr).Msg("Ingest HTTP server listening")

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down ingest HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), types.RPCTimeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()

	reader, err := r.MultipartReader()
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("bad_request").Inc()
		http.Error(w, "Expected multipart form", http.StatusBadRequest)
		return
	}

	part, err := nextFilePart(reader)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("bad_request").Inc()
		http.Error(w, "Missing file field", http.StatusBadRequest)
		return
	}
	defer part.Close()

	fileID := uuid.NewString()
	filename := part.FileName()
	now := time.Now().UTC()

	// Directory row first, so placements made while chunks are still in
	// flight can mirror the filename. Size is patched once known.
	if err := s.store.CreateFile(&types.FileInfo{
		FileID:     fileID,
		Filename:   filename,
		UploadTime: now,
	}); err != nil {
		s.logger.Error().Err(err).Str("file_id", fileID).Msg("Failed to create directory row")
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	chunks, size, err := SplitStream(part, func(chunkID int64, data []byte) error {
		body, err := json.Marshal(types.ChunkMessage{
			FileID:  fileID,
			ChunkID: chunkID,
			Data:    base64.StdEncoding.EncodeToString(data),
		})
		if err != nil {
			return err
		}
		if err := s.publisher.Publish(r.Context(), body); err != nil {
			return err
		}
		metrics.ChunksPublished.Inc()
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("file_id", fileID).Msg("Upload failed mid-stream")
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := s.store.CreateFile(&types.FileInfo{
		FileID:     fileID,
		Filename:   filename,
		Size:       size,
		UploadTime: now,
	}); err != nil {
		s.logger.Error().Err(err).Str("file_id", fileID).Msg("Failed to record file size")
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.logger.Info().Str("file_id", fileID).Str("filename", filename).
		Int64("size", size).Int64("chunks", chunks).Msg("Upload accepted")
	metrics.UploadsTotal.WithLabelValues("ok").Inc()
	metrics.UploadDuration.Observe(time.Since(start).Seconds())

	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Upload successful. Total chunks sent: %d", chunks)
}

// nextFilePart scans the multipart stream for the "file" field.
func nextFilePart(reader *multipart.Reader) (*multipart.Part, error) {
	for {
		part, err := reader.NextPart()
		if err != nil {
			return nil, err
		}
		if part.FormName() == "file" {
			return part, nil
		}
		part.Close()
	}
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	start := time.Now()

	name := r.URL.Query().Get("name")
	if name == "" {
		metrics.DownloadsTotal.WithLabelValues("bad_request").Inc()
		http.Error(w, "Missing name parameter", http.StatusBadRequest)
		return
	}

	info, err := s.store.FindFileByName(name)
	if err != nil {
		if errors.Is(err, metadata.ErrNotFound) {
			metrics.DownloadsTotal.WithLabelValues("not_found").Inc()
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		s.logger.Error().Err(err).Str("filename", name).Msg("Directory lookup failed")
		metrics.DownloadsTotal.WithLabelValues("error").Inc()
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	placements, err := s.store.FindPlacementsByFileID(info.FileID)
	if err != nil {
		s.logger.Error().Err(err).Str("file_id", info.FileID).Msg("Placement enumeration failed")
		metrics.DownloadsTotal.WithLabelValues("error").Inc()
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// A file whose chunks are still in flight (or lost) is unreadable;
	// partial content is never served.
	if int64(len(placements)) < types.ChunkCount(info.Size) {
		s.logger.Warn().Str("file_id", info.FileID).Int("placed", len(placements)).
			Int64("expected", types.ChunkCount(info.Size)).Msg("File incomplete, refusing download")
		metrics.DownloadsTotal.WithLabelValues("error").Inc()
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// Chunks are buffered before the first response byte so a retrieval
	// failure can still surface as a 500.
	var assembled bytes.Buffer
	for _, p := range placements {
		data, found, err := s.retrieveWithDeadline(r.Context(), p)
		if err != nil || !found {
			s.logger.Error().Err(err).Str("file_id", p.FileID).Int64("chunk_id", p.ChunkID).
				Str("worker", p.WorkerID).Bool("found", found).Msg("Chunk retrieval failed")
			metrics.DownloadsTotal.WithLabelValues("error").Inc()
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		assembled.Write(data)
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", info.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(assembled.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, &assembled)

	metrics.DownloadsTotal.WithLabelValues("ok").Inc()
	metrics.DownloadDuration.Observe(time.Since(start).Seconds())
}

func (s *Server) retrieveWithDeadline(ctx context.Context, p *types.ChunkPlacement) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, types.RPCTimeout)
	defer cancel()
	return s.retriever.RetrieveChunk(ctx, p.WorkerAddress, p.WorkerID, p.FileID, p.ChunkID)
}
