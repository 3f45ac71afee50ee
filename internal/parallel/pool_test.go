package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -3} {
		pool := NewWorkerPool(n)
		if want := runtime.GOMAXPROCS(0); pool.Workers() != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d", n, pool.Workers(), want)
		}
		pool.Close()
	}
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(work)

	if got := counter.Load(); got != 100 {
		t.Errorf("counter = %d, want 100", got)
	}
}

func TestWorkerPool_ExecuteAll_OwnSlots(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	// Each task writes only its own slot; no synchronization is needed
	// beyond the join.
	out := make([]int, 50)
	work := make([]func(), len(out))
	for i := range work {
		work[i] = func() { out[i] = i * i }
	}
	pool.ExecuteAll(work)

	for i, v := range out {
		if v != i*i {
			t.Errorf("out[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()
	pool.ExecuteAll(nil) // must not block
}

func TestWorkerPool_ExecuteAll_PanicIsolated(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var ran atomic.Int64
	work := []func(){
		func() { ran.Add(1) },
		func() { panic("bad glyph") },
		func() { ran.Add(1) },
	}
	pool.ExecuteAll(work)

	if got := ran.Load(); got != 2 {
		t.Errorf("completed tasks = %d, want 2", got)
	}
	if got := pool.Panics(); got != 1 {
		t.Errorf("Panics() = %d, want 1", got)
	}

	// Workers survive the panic.
	pool.ExecuteAll([]func(){func() { ran.Add(1) }})
	if got := ran.Load(); got != 3 {
		t.Errorf("completed tasks after panic = %d, want 3", got)
	}
}

func TestWorkerPool_ExecuteAll_AfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	var ran atomic.Int64
	pool.ExecuteAll([]func(){func() { ran.Add(1) }, func() { ran.Add(1) }})
	if got := ran.Load(); got != 2 {
		t.Errorf("tasks run after Close = %d, want 2 (inline)", got)
	}
}

// =============================================================================
// Submit and Close Tests
// =============================================================================

func TestWorkerPool_Submit(t *testing.T) {
	pool := NewWorkerPool(2)

	var wg sync.WaitGroup
	wg.Add(1)
	if !pool.Submit(wg.Done) {
		t.Fatal("Submit() = false on a running pool")
	}
	wg.Wait()

	if pool.Submit(nil) {
		t.Error("Submit(nil) = true, want false")
	}
	pool.Close()
	if pool.Submit(func() {}) {
		t.Error("Submit() after Close = true, want false")
	}
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()
	if pool.IsRunning() {
		t.Error("IsRunning() = true after Close")
	}
}

func TestWorkerPool_CloseDrainsQueuedWork(t *testing.T) {
	pool := NewWorkerPool(1)

	var counter atomic.Int64
	for range 20 {
		pool.Submit(func() { counter.Add(1) })
	}
	pool.Close()

	if got := counter.Load(); got != 20 {
		t.Errorf("counter = %d, want 20", got)
	}
}

func TestWorkerPool_ConcurrentExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			work := make([]func(), 25)
			for i := range work {
				work[i] = func() { counter.Add(1) }
			}
			pool.ExecuteAll(work)
		}()
	}
	wg.Wait()

	if got := counter.Load(); got != 200 {
		t.Errorf("counter = %d, want 200", got)
	}
}
