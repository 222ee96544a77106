package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vk/burstrank/internal/ctxlog"
	"github.com/vk/burstrank/internal/graph"
	"github.com/vk/burstrank/internal/scheduler"
)

// ErrAlreadyRan is returned when Run is called a second time on one Engine.
var ErrAlreadyRan = errors.New("engine has already run")

// resetterID is the worker that resets the cursor between passes.
const resetterID = 0

// PassHook is called once per pass by the resetting worker, after the cursor
// is reset and before the other workers are released into the next pass.
// It runs on the critical path of every worker and should return quickly.
type PassHook func(ctx context.Context, pass, total int)

// Option customises an Engine.
type Option func(*Engine)

// WithPassHook registers a callback invoked after every pass.
func WithPassHook(h PassHook) Option {
	return func(e *Engine) { e.onPass = h }
}

// Engine computes ranks in place on a graph.Store.
type Engine struct {
	store  *graph.Store
	opts   Options
	onPass PassHook
	ran    atomic.Bool
}

// Result summarises a finished computation.
type Result struct {
	Passes           int
	Workers          int
	NodeUpdates      int64
	UpdatesPerWorker []int64
	Elapsed          time.Duration
}

// run holds the state shared by the workers of a single computation.
type run struct {
	cursor   *scheduler.Cursor
	barrier  *Barrier
	done     *Completion
	finished atomic.Int32
	passes   int
	updates  []int64
}

// New validates the options and binds them to a store.
func New(store *graph.Store, opts Options, options ...Option) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: graph store is nil", ErrInvalidOptions)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{store: store, opts: opts}
	for _, o := range options {
		o(e)
	}
	return e, nil
}

// Options returns the options the engine was built with.
func (e *Engine) Options() Options { return e.opts }

// Run spawns the worker pool, blocks until every worker has finished all
// passes and joins the pool. The context only carries the logger; the
// computation always runs every pass.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if !e.ran.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRan
	}

	logger := ctxlog.FromContext(ctx)
	workers := e.opts.Workers
	logger.Debug("Engine starting.",
		"workers", workers,
		"iterations", e.opts.Iterations,
		"nodes", e.store.Len(),
		"buckets", e.store.BucketCount(),
	)

	r := &run{
		cursor:  scheduler.NewCursor(e.store.BucketCount()),
		barrier: NewBarrier(workers),
		done:    NewCompletion(),
		updates: make([]int64, workers),
	}

	start := time.Now()
	var wg sync.WaitGroup
	for id := 0; id < workers; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			e.worker(ctx, r, id)
		}(id)
	}

	r.done.Wait()
	logger.Debug("Completion signaled, joining workers.")
	wg.Wait()

	res := &Result{
		Passes:           r.passes,
		Workers:          workers,
		UpdatesPerWorker: r.updates,
		Elapsed:          time.Since(start),
	}
	for _, u := range r.updates {
		res.NodeUpdates += u
	}
	logger.Debug("Engine finished.", "passes", res.Passes, "node_updates", res.NodeUpdates, "elapsed", res.Elapsed)
	return res, nil
}
