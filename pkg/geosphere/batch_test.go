package geosphere

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDefaults(t *testing.T) {
	d := newTestDispatcher(t, 0, -1)
	assert.Equal(t, DefaultWorkers, d.Workers())
	assert.Equal(t, DefaultBatchWidth, d.BatchWidth())

	d = newTestDispatcher(t, 2, 5)
	assert.Equal(t, 2, d.Workers())
	assert.Equal(t, 5, d.BatchWidth())
}

func TestDispatcherRunsEveryUnitOnce(t *testing.T) {
	for _, width := range []int{1, 3, 4, 7, 20, 32} {
		d := newTestDispatcher(t, 4, width)
		var mu sync.Mutex
		seen := make(map[int]int)

		err := d.Run(FaceCount, func(i int) error {
			mu.Lock()
			seen[i]++
			mu.Unlock()
			return nil
		})
		require.NoError(t, err)
		require.Len(t, seen, FaceCount, "width %d", width)
		for i := 0; i < FaceCount; i++ {
			assert.Equal(t, 1, seen[i], "width %d unit %d", width, i)
		}
	}
}

func TestDispatcherBoundsInFlight(t *testing.T) {
	const width = 3
	d := newTestDispatcher(t, 8, width)
	var inFlight, peak atomic.Int32

	err := d.Run(FaceCount, func(int) error {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(width))
}

func TestDispatcherJoinsBatches(t *testing.T) {
	const width = 4
	d := newTestDispatcher(t, 4, width)
	var done atomic.Int32

	err := d.Run(FaceCount, func(i int) error {
		if got, want := int(done.Load()), (i/width)*width; got < want {
			return errors.New("unit started before the previous batch finished")
		}
		time.Sleep(time.Millisecond)
		done.Add(1)
		return nil
	})
	assert.NoError(t, err)
}

func TestDispatcherStopsAfterFailingBatch(t *testing.T) {
	errUnit := errors.New("unit failed")
	d := newTestDispatcher(t, 4, 4)
	var ran [FaceCount]atomic.Bool

	err := d.Run(FaceCount, func(i int) error {
		ran[i].Store(true)
		if i == 5 || i == 6 {
			return errUnit
		}
		return nil
	})
	require.ErrorIs(t, err, errUnit)

	for i := 0; i < 8; i++ {
		assert.True(t, ran[i].Load(), "unit %d of a started batch did not run", i)
	}
	for i := 8; i < FaceCount; i++ {
		assert.False(t, ran[i].Load(), "unit %d ran after a failed batch", i)
	}
}

func TestDispatcherReportsLowestIndexError(t *testing.T) {
	d := newTestDispatcher(t, 4, 4)
	errs := map[int]error{5: errors.New("five"), 6: errors.New("six")}

	err := d.Run(FaceCount, func(i int) error {
		if i == 6 {
			time.Sleep(time.Millisecond)
		}
		return errs[i]
	})
	assert.Same(t, errs[5], err)
}

func TestDispatcherRecoversPanics(t *testing.T) {
	d := newTestDispatcher(t, 2, 4)
	err := d.Run(FaceCount, func(i int) error {
		if i == 2 {
			panic("boom")
		}
		return nil
	})
	require.ErrorIs(t, err, ErrUnitPanic)
	assert.Contains(t, err.Error(), "unit 2")
	assert.Contains(t, err.Error(), "boom")
}

func TestDispatcherEmptyRun(t *testing.T) {
	d := newTestDispatcher(t, 1, 1)
	called := false
	assert.NoError(t, d.Run(0, func(int) error { called = true; return nil }))
	assert.False(t, called)
}

func TestDispatcherClose(t *testing.T) {
	d := NewDispatcher(2, 2)
	require.NoError(t, d.Run(4, func(int) error { return nil }))

	d.Close()
	d.Close()
	err := d.Run(4, func(int) error { return nil })
	assert.ErrorIs(t, err, ErrDispatcherClosed)
}

func TestDispatcherCloseStopsWorkers(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 20; i++ {
		d := NewDispatcher(4, 4)
		require.NoError(t, d.Run(FaceCount, func(int) error { return nil }))
		d.Close()
	}
	assert.Eventually(t, func() bool { return runtime.NumGoroutine() <= before+2 },
		3*time.Second, 20*time.Millisecond, "workers still running after Close")
}
