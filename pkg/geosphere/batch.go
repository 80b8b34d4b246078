package geosphere

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Dispatcher defaults.
const (
	DefaultWorkers    = 4
	DefaultBatchWidth = 4
)

// Dispatcher errors.
var (
	ErrUnitPanic        = errors.New("geosphere: unit of work panicked")
	ErrDispatcherClosed = errors.New("geosphere: dispatcher closed")
)

// Dispatcher runs indexed units of work on a bounded worker pool in fixed-width
// batches. Every batch is joined before the next one is submitted, so a unit may
// read anything written by units of earlier batches.
type Dispatcher struct {
	pool    worker.DynamicWorkerPool
	workers int
	width   int

	closeOnce sync.Once
	closed    bool
}

// NewDispatcher creates a dispatcher with the given pool size and batch width.
// Non-positive values fall back to the defaults.
func NewDispatcher(workers, width int) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if width <= 0 {
		width = DefaultBatchWidth
	}
	return &Dispatcher{
		pool:    worker.NewDynamicWorkerPool(workers, max(width, 64), time.Second),
		workers: workers,
		width:   width,
	}
}

// Workers returns the pool size.
func (d *Dispatcher) Workers() int { return d.workers }

// BatchWidth returns the number of units submitted per batch.
func (d *Dispatcher) BatchWidth() int { return d.width }

// Run executes fn(0) .. fn(n-1). The batch containing the first failing unit is
// allowed to finish, its lowest-index error is returned and no further batch starts.
func (d *Dispatcher) Run(n int, fn func(i int) error) error {
	if d.closed {
		return ErrDispatcherClosed
	}
	for start := 0; start < n; start += d.width {
		end := min(start+d.width, n)
		if err := d.runBatch(start, end, fn); err != nil {
			return err
		}
	}
	return nil
}

// Close stops the pool's workers. It must not overlap a Run; later Runs fail with
// ErrDispatcherClosed. Calling Close more than once is a no-op.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.closed = true
		d.pool.Stop()
	})
}

func (d *Dispatcher) runBatch(start, end int, fn func(i int) error) error {
	errs := make([]error, end-start)

	var wg sync.WaitGroup
	for i := start; i < end; i++ {
		wg.Add(1)
		idx := i
		d.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				defer func() {
					if r := recover(); r != nil {
						errs[idx-start] = fmt.Errorf("%w: unit %d: %v", ErrUnitPanic, idx, r)
					}
				}()
				errs[idx-start] = fn(idx)
				return nil, nil
			},
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
