package registry

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertAndActive(t *testing.T) {
	now := time.Now()
	r := New(5 * time.Second)

	r.Upsert("w1", "10.0.0.1:7000", now)
	r.Upsert("w2", "10.0.0.2:7000", now)

	active := r.Active(now)
	require.Len(t, active, 2)
	assert.Equal(t, "w1", active[0].ID)
	assert.Equal(t, "w2", active[1].ID)
}

func TestUpsertOverwritesAddress(t *testing.T) {
	now := time.Now()
	r := New(5 * time.Second)

	r.Upsert("w1", "10.0.0.1:7000", now)
	r.Upsert("w1", "10.0.0.9:7000", now.Add(time.Second))

	w, ok := r.Get("w1")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.9:7000", w.Address)
	assert.Equal(t, now.Add(time.Second), w.LastHeartbeat)
	assert.Equal(t, 1, r.Len())
}

func TestActiveFiltersStaleWorkers(t *testing.T) {
	now := time.Now()
	r := New(5 * time.Second)

	r.Upsert("w1", "10.0.0.1:7000", now)
	r.Upsert("w2", "10.0.0.2:7000", now)
	r.Upsert("w3", "10.0.0.3:7000", now)

	// w2 stops heartbeating; the others refresh.
	later := now.Add(6 * time.Second)
	r.Upsert("w1", "10.0.0.1:7000", later)
	r.Upsert("w3", "10.0.0.3:7000", later)

	active := r.Active(later)
	require.Len(t, active, 2)
	assert.Equal(t, "w1", active[0].ID)
	assert.Equal(t, "w3", active[1].ID)
}

func TestReap(t *testing.T) {
	now := time.Now()
	r := New(5 * time.Second)

	r.Upsert("w1", "10.0.0.1:7000", now)
	r.Upsert("w2", "10.0.0.2:7000", now.Add(4*time.Second))

	reaped := r.Reap(now.Add(6 * time.Second))
	assert.Equal(t, []string{"w1"}, reaped)
	assert.Equal(t, 1, r.Len())

	_, ok := r.Get("w1")
	assert.False(t, ok)
}

func TestReapedWorkerReregistersAtBack(t *testing.T) {
	now := time.Now()
	r := New(5 * time.Second)

	r.Upsert("w1", "10.0.0.1:7000", now)
	r.Upsert("w2", "10.0.0.2:7000", now)

	// w1 goes stale and is reaped, then comes back.
	later := now.Add(10 * time.Second)
	r.Upsert("w2", "10.0.0.2:7000", later)
	r.Reap(later)
	r.Upsert("w1", "10.0.0.1:7000", later)

	active := r.Active(later)
	require.Len(t, active, 2)
	assert.Equal(t, "w2", active[0].ID)
	assert.Equal(t, "w1", active[1].ID)
}

func TestBoundaryExactlyAtTimeout(t *testing.T) {
	now := time.Now()
	r := New(5 * time.Second)
	r.Upsert("w1", "10.0.0.1:7000", now)

	// now - lastHeartbeat == timeout is still active.
	at := now.Add(5 * time.Second)
	assert.Len(t, r.Active(at), 1)
	assert.Empty(t, r.Reap(at))

	past := now.Add(5*time.Second + time.Millisecond)
	assert.Empty(t, r.Active(past))
	assert.Equal(t, []string{"w1"}, r.Reap(past))
}

func TestConcurrentUpserts(t *testing.T) {
	r := New(5 * time.Second)
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Upsert(fmt.Sprintf("w%d", n), "10.0.0.1:7000", now)
				r.Active(now)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 16, r.Len())
	assert.Len(t, r.Active(now), 16)
}
