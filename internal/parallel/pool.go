// Package parallel provides the bounded worker pool that rasterizes glyphs.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs tasks on a fixed number of goroutines.
//
// Tasks are pulled from a shared bounded queue. ExecuteAll is the join
// barrier: it returns once every submitted task has finished. A task that
// panics is recovered and counted; it never takes a worker down and never
// affects sibling tasks.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	tasks   chan func()

	// mu guards closing tasks against concurrent sends.
	mu      sync.RWMutex
	running atomic.Bool
	wg      sync.WaitGroup

	panics atomic.Uint64
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &WorkerPool{
		workers: workers,
		tasks:   make(chan func(), max(workers*4, 8)),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		p.run(task)
	}
}

func (p *WorkerPool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.panics.Add(1)
		}
	}()
	task()
}

// Submit queues a single task without waiting for it.
// It reports false if the pool is closed.
func (p *WorkerPool) Submit(task func()) bool {
	if task == nil {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.running.Load() {
		return false
	}
	p.tasks <- task
	return true
}

// ExecuteAll runs every task and blocks until all have completed.
// On a closed pool the tasks run on the calling goroutine, so callers
// always get their results.
func (p *WorkerPool) ExecuteAll(tasks []func()) {
	if len(tasks) == 0 {
		return
	}

	var done sync.WaitGroup
	done.Add(len(tasks))
	for _, task := range tasks {
		wrapped := func() {
			defer done.Done()
			task()
		}
		if !p.Submit(wrapped) {
			p.run(wrapped)
		}
	}
	done.Wait()
}

// Close stops accepting work, waits for queued tasks to finish and stops
// the workers. Close is safe to call more than once.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.tasks)
	p.mu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int { return p.workers }

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool { return p.running.Load() }

// Panics returns the number of tasks that panicked.
func (p *WorkerPool) Panics() uint64 { return p.panics.Load() }
