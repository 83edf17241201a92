// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for
// splitting table generation across cores. A Pool is created once and reused
// for every table a generator run builds.
//
// Work functions return an error; the first error stops the remaining work
// from being picked up and is returned to the caller.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	err := pool.ParallelForBatched(1<<prefixBits, 256, func(start, end int) error {
//	    return decodePatterns(start, end)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once at creation
// and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// firstErr keeps the first error reported by any worker.
type firstErr struct {
	once   sync.Once
	err    error
	failed atomic.Bool
}

func (f *firstErr) set(err error) {
	if err == nil {
		return
	}
	f.once.Do(func() {
		f.err = err
		f.failed.Store(true)
	})
}

// New creates a worker pool with numWorkers persistent workers.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. Pending work completes. Calling Close
// multiple times is safe; a closed pool runs work on the calling goroutine.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// run hands one closure per worker to the pool and waits for all of them.
func (p *Pool) run(workers int, fn func()) {
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- workItem{fn: fn, barrier: &wg}
	}
	wg.Wait()
}

// ParallelFor splits [0, n) into one contiguous range per worker and calls
// fn(start, end) for each. It blocks until every range is done and returns
// the first error.
func (p *Pool) ParallelFor(n int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}
	workers := min(p.numWorkers, n)
	if workers == 1 || p.closed.Load() {
		return fn(0, n)
	}

	chunkSize := (n + workers - 1) / workers
	var fe firstErr
	var next atomic.Int64
	p.run(workers, func() {
		start := int(next.Add(1)-1) * chunkSize
		if start >= n || fe.failed.Load() {
			return
		}
		fe.set(fn(start, min(start+chunkSize, n)))
	})
	return fe.err
}

// ParallelForAtomic calls fn(i) for every i in [0, n), handing out indices
// one at a time so uneven items balance across workers. After the first
// error no new index is started.
func (p *Pool) ParallelForAtomic(n int, fn func(i int) error) error {
	return p.ParallelForBatched(n, 1, func(start, end int) error {
		for i := start; i < end; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	})
}

// ParallelForBatched hands out [0, n) in batches of batchSize and calls
// fn(start, end) for each batch. After the first error no new batch is
// started.
func (p *Pool) ParallelForBatched(n, batchSize int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	numBatches := (n + batchSize - 1) / batchSize
	workers := min(p.numWorkers, numBatches)
	if workers == 1 || p.closed.Load() {
		for start := 0; start < n; start += batchSize {
			if err := fn(start, min(start+batchSize, n)); err != nil {
				return err
			}
		}
		return nil
	}

	var fe firstErr
	var nextBatch atomic.Int64
	p.run(workers, func() {
		for !fe.failed.Load() {
			start := int(nextBatch.Add(1)-1) * batchSize
			if start >= n {
				return
			}
			fe.set(fn(start, min(start+batchSize, n)))
		}
	})
	return fe.err
}
