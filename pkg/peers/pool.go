package peers

import (
	"context"
	"fmt"
	"sync"

	"github.com/granary-io/granary/api/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Pool caches worker RPC connections keyed by host:port. Connections are
// created lazily and survive across calls; an RPC transport failure
// invalidates the cached connection so the next call redials.
//
// Both the scheduler (chunk retrieval during downloads) and workers
// (peer-forwarded stores) share this type.
type Pool struct {
	mu    sync.Mutex
	conns map[string]*grpc.ClientConn
}

// NewPool creates an empty connection pool.
func NewPool() *Pool {
	return &Pool{conns: make(map[string]*grpc.ClientConn)}
}

func (p *Pool) get(address string) (*grpc.ClientConn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if conn, ok := p.conns[address]; ok {
		return conn, nil
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to dial worker %s: %w", address, err)
	}
	p.conns[address] = conn
	return conn, nil
}

// invalidate drops a cached connection after a failed RPC. Only the exact
// connection is dropped; a concurrent redial is left alone.
func (p *Pool) invalidate(address string, conn *grpc.ClientConn) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if cached, ok := p.conns[address]; ok && cached == conn {
		delete(p.conns, address)
		cached.Close()
	}
}

// StoreChunk stores chunk bytes on the worker at address. An in-band
// rejection (success=false) is returned as an error without invalidating
// the connection.
func (p *Pool) StoreChunk(ctx context.Context, address, workerID, fileID string, chunkID int64, data []byte) error {
	conn, err := p.get(address)
	if err != nil {
		return err
	}

	resp, err := proto.NewWorkerServiceClient(conn).StoreChunk(ctx, &proto.StoreChunkRequest{
		WorkerId:  workerID,
		FileId:    fileID,
		ChunkId:   chunkID,
		ChunkData: data,
	})
	if err != nil {
		p.invalidate(address, conn)
		return fmt.Errorf("store chunk on %s failed: %w", address, err)
	}
	if !resp.GetSuccess() {
		return fmt.Errorf("store chunk rejected by %s: %s", address, resp.GetMessage())
	}
	return nil
}

// RetrieveChunk fetches chunk bytes from the worker at address. found is
// false when the worker holds no file for (fileId, chunkId).
func (p *Pool) RetrieveChunk(ctx context.Context, address, workerID, fileID string, chunkID int64) ([]byte, bool, error) {
	conn, err := p.get(address)
	if err != nil {
		return nil, false, err
	}

	resp, err := proto.NewWorkerServiceClient(conn).RetrieveChunk(ctx, &proto.RetrieveChunkRequest{
		WorkerId: workerID,
		FileId:   fileID,
		ChunkId:  chunkID,
	})
	if err != nil {
		p.invalidate(address, conn)
		return nil, false, fmt.Errorf("retrieve chunk from %s failed: %w", address, err)
	}
	return resp.GetChunkData(), resp.GetFound(), nil
}

// Close closes every cached connection.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for addr, conn := range p.conns {
		conn.Close()
		delete(p.conns, addr)
	}
}
