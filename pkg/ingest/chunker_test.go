package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/granary-io/granary/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStreamSizes(t *testing.T) {
	tests := []struct {
		size   int64
		chunks int64
	}{
		{0, 0},
		{1, 1},
		{types.ChunkSize - 1, 1},
		{types.ChunkSize, 1},
		{types.ChunkSize + 1, 2},
		{10 * types.ChunkSize, 10},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("size_%d", tt.size), func(t *testing.T) {
			input := make([]byte, tt.size)
			_, _ = rand.New(rand.NewSource(tt.size)).Read(input)

			var reassembled bytes.Buffer
			var lastID int64 = -1
			chunks, size, err := SplitStream(bytes.NewReader(input), func(chunkID int64, data []byte) error {
				assert.Equal(t, lastID+1, chunkID, "chunk ids must be stream-ordered")
				lastID = chunkID
				reassembled.Write(data)
				return nil
			})
			require.NoError(t, err)

			assert.Equal(t, tt.chunks, chunks)
			assert.Equal(t, tt.size, size)
			assert.Equal(t, input, reassembled.Bytes())
		})
	}
}

func TestSplitStreamLastChunkShort(t *testing.T) {
	input := make([]byte, types.ChunkSize+5)

	var lengths []int
	_, _, err := SplitStream(bytes.NewReader(input), func(_ int64, data []byte) error {
		lengths = append(lengths, len(data))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{types.ChunkSize, 5}, lengths)
}

func TestSplitStreamEmitErrorStops(t *testing.T) {
	input := make([]byte, 3*types.ChunkSize)
	boom := errors.New("broker down")

	var calls int
	chunks, _, err := SplitStream(bytes.NewReader(input), func(chunkID int64, _ []byte) error {
		calls++
		if chunkID == 1 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int64(1), chunks)
	assert.Equal(t, 2, calls)
}
