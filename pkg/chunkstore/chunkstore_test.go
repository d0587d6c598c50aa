package chunkstore

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndRead(t *testing.T) {
	s, err := New(t.TempDir(), "w1")
	require.NoError(t, err)

	data := []byte("hello chunk")
	require.NoError(t, s.Write("f1", 0, data))

	got, err := s.Read("f1", 0)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestReadNotFound(t *testing.T) {
	s, err := New(t.TempDir(), "w1")
	require.NoError(t, err)

	_, err = s.Read("nope", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWriteOverwritesIdempotently(t *testing.T) {
	s, err := New(t.TempDir(), "w1")
	require.NoError(t, err)

	require.NoError(t, s.Write("f1", 3, []byte("first")))
	require.NoError(t, s.Write("f1", 3, []byte("second")))

	got, err := s.Read("f1", 3)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestNoCrossFileCollision(t *testing.T) {
	s, err := New(t.TempDir(), "w1")
	require.NoError(t, err)

	// Same chunkId, different files: the on-disk key includes fileId.
	a := bytes.Repeat([]byte{0xAA}, 64)
	b := bytes.Repeat([]byte{0xBB}, 64)
	require.NoError(t, s.Write("fileA", 0, a))
	require.NoError(t, s.Write("fileB", 0, b))

	gotA, err := s.Read("fileA", 0)
	require.NoError(t, err)
	gotB, err := s.Read("fileB", 0)
	require.NoError(t, err)
	assert.Equal(t, a, gotA)
	assert.Equal(t, b, gotB)
}

func TestWorkersAreIsolated(t *testing.T) {
	root := t.TempDir()
	s1, err := New(root, "w1")
	require.NoError(t, err)
	s2, err := New(root, "w2")
	require.NoError(t, err)

	require.NoError(t, s1.Write("f1", 0, []byte("w1 data")))

	_, err = s2.Read("f1", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadDirectoryIsNotFound(t *testing.T) {
	s, err := New(t.TempDir(), "w1")
	require.NoError(t, err)

	// A directory squatting on the chunk path must not be served.
	require.NoError(t, os.MkdirAll(filepath.Join(s.Dir(), "f1_0.chunk"), 0755))

	_, err = s.Read("f1", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmptyChunk(t *testing.T) {
	s, err := New(t.TempDir(), "w1")
	require.NoError(t, err)

	require.NoError(t, s.Write("f1", 0, nil))
	got, err := s.Read("f1", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
