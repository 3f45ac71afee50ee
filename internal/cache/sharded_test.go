package cache

import (
	"strconv"
	"sync"
	"testing"
)

// constHasher puts every key in shard 0 so eviction order is observable.
func constHasher(string) uint64 { return 0 }

func TestShardedGetSet(t *testing.T) {
	c := NewSharded[string, int](4, constHasher)

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v, want 1, true", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) reported a hit")
	}

	st := c.Stats()
	if st.Hits != 1 || st.Misses != 1 {
		t.Errorf("Stats = %+v, want 1 hit and 1 miss", st)
	}
}

func TestShardedEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewSharded[string, int](2, constHasher)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // b is now the oldest
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s should still be cached", k)
		}
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestShardedGetOrCreate(t *testing.T) {
	c := NewSharded[string, int](0, constHasher)
	calls := 0
	create := func() int {
		calls++
		return 7
	}

	for range 3 {
		if v := c.GetOrCreate("k", create); v != 7 {
			t.Errorf("GetOrCreate = %d, want 7", v)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestShardedDeleteAndClear(t *testing.T) {
	c := NewSharded[string, int](8, func(s string) uint64 { return uint64(len(s)) })
	c.Set("x", 1)
	c.Set("yy", 2)

	if !c.Delete("x") {
		t.Error("Delete(x) = false, want true")
	}
	if c.Delete("x") {
		t.Error("second Delete(x) = true, want false")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", c.Len())
	}
}

func TestShardedConcurrentGetOrCreate(t *testing.T) {
	c := NewSharded[string, int](64, func(s string) uint64 {
		n, _ := strconv.Atoi(s)
		return uint64(n)
	})

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				k := strconv.Itoa(i)
				if v := c.GetOrCreate(k, func() int { return i }); v != i {
					t.Errorf("goroutine %d: GetOrCreate(%s) = %d", g, k, v)
				}
			}
		}()
	}
	wg.Wait()

	if c.Len() != 100 {
		t.Errorf("Len = %d, want 100", c.Len())
	}
}
