// Package worker runs batch position analysis on a pool of goroutines.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/errors"
	"github.com/lgbarn/chesscore-go/internal/search"
)

// WorkItem is one position to analyse. Position takes precedence over FEN;
// a Depth of zero means the pool's default depth.
type WorkItem struct {
	Index    int // Original index for tracking
	FEN      string
	Position *chess.Position
	Depth    int
}

// ProcessResult is the outcome of analysing one work item.
type ProcessResult struct {
	Index  int
	FEN    string
	Result search.Result
	Err    error

	Hash  chess.HashCode // Position hash of the analysed position
	Depth int
	// Duplicate is set when the same position and depth appeared earlier
	// in the batch; its Result is copied from that item.
	Duplicate bool
}

// ProcessFunc analyses a single work item.
type ProcessFunc func(ctx context.Context, item WorkItem) ProcessResult

// Pool feeds work items to a fixed set of workers. Every submitted item
// yields exactly one result, including items that arrive after the pool
// was stopped.
type Pool struct {
	numWorkers int
	queueSize  int
	process    ProcessFunc

	work    chan WorkItem
	results chan ProcessResult
	wg      sync.WaitGroup

	stopErr   atomic.Pointer[error]
	processed atomic.Int64
	release   func() bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithQueueSize sets the capacity of the work and result queues.
func WithQueueSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.queueSize = size
		}
	}
}

// NewPool creates a pool running process. Default: 1 worker, queue of 10.
func NewPool(process ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers: 1,
		queueSize:  10,
		process:    process,
		release:    func() bool { return false },
	}
	for _, opt := range opts {
		opt(p)
	}
	p.work = make(chan WorkItem, p.queueSize)
	p.results = make(chan ProcessResult, p.queueSize)
	return p
}

// Start launches the workers. When ctx is done the pool stops with the
// context's cause.
func (p *Pool) Start(ctx context.Context) {
	p.release = context.AfterFunc(ctx, func() { p.Stop(context.Cause(ctx)) })
	for range p.numWorkers {
		p.wg.Add(1)
		go p.run(ctx)
	}
}

func (p *Pool) run(ctx context.Context) {
	defer p.wg.Done()

	for item := range p.work {
		if err := p.Err(); err != nil {
			p.results <- ProcessResult{Index: item.Index, FEN: item.FEN, Depth: item.Depth, Err: err}
			continue
		}
		res := p.process(ctx, item)
		p.processed.Add(1)
		p.results <- res
	}
}

// Submit queues an item, blocking while the queue is full.
func (p *Pool) Submit(item WorkItem) {
	p.work <- item
}

// Stop makes the workers fail the remaining items with cause instead of
// analysing them. A nil cause means errors.ErrPoolStopped. Only the first
// call has an effect.
func (p *Pool) Stop(cause error) {
	if cause == nil {
		cause = errors.ErrPoolStopped
	}
	p.stopErr.CompareAndSwap(nil, &cause)
}

// Err returns the stop cause, or nil while the pool is running.
func (p *Pool) Err() error {
	if err := p.stopErr.Load(); err != nil {
		return *err
	}
	return nil
}

// Close stops accepting work, waits for the workers and closes the
// result channel.
func (p *Pool) Close() {
	close(p.work)
	p.wg.Wait()
	p.release()
	close(p.results)
}

// Results returns the result channel.
func (p *Pool) Results() <-chan ProcessResult {
	return p.results
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Processed returns how many items were handed to the process function.
func (p *Pool) Processed() int {
	return int(p.processed.Load())
}
