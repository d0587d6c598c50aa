package ingest

import (
	"io"

	"github.com/granary-io/granary/pkg/types"
)

// SplitStream reads r to EOF in ChunkSize slices and calls emit for each
// one, assigning chunk ids in stream order. The last chunk may be short;
// an empty stream emits nothing. Returns the number of chunks emitted
// and the total bytes read.
//
// emit owns the data slice it receives; it is never reused.
func SplitStream(r io.Reader, emit func(chunkID int64, data []byte) error) (chunks int64, size int64, err error) {
	buf := make([]byte, types.ChunkSize)
	for {
		n, rerr := io.ReadFull(r, buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			if err := emit(chunks, chunk); err != nil {
				return chunks, size, err
			}
			chunks++
			size += int64(n)
		}
		if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
			return chunks, size, nil
		}
		if rerr != nil {
			return chunks, size, rerr
		}
	}
}
