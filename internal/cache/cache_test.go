package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPutGet(t *testing.T) {
	s := New[string](4)
	s.Put("k", "v", time.Minute)

	got, ok := s.Get("k")
	if !ok {
		t.Fatal("Expected a hit right after Put")
	}
	if got != "v" {
		t.Errorf("Expected v, got %s", got)
	}
}

func TestGet_Miss(t *testing.T) {
	s := New[string](4)
	if _, ok := s.Get("missing"); ok {
		t.Error("Expected a miss for an unknown key")
	}
}

func TestExpiry(t *testing.T) {
	s := New[string](4)
	now := time.Now()
	s.now = func() time.Time { return now }

	s.Put("k", "v", 30*time.Millisecond)

	if _, ok := s.Get("k"); !ok {
		t.Fatal("Expected a hit before the TTL elapses")
	}

	now = now.Add(31 * time.Millisecond)
	if _, ok := s.Get("k"); ok {
		t.Error("Expected expired entry to never be returned")
	}
	if s.Len() != 0 {
		t.Errorf("Expected lazy expiry to drop the entry, len = %d", s.Len())
	}
}

func TestPut_Overwrite(t *testing.T) {
	s := New[string](4)
	s.Put("k", "old", time.Minute)
	s.Put("k", "new", time.Minute)

	got, _ := s.Get("k")
	if got != "new" {
		t.Errorf("Expected overwrite, got %s", got)
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 entry after overwrite, got %d", s.Len())
	}
}

func TestLRUEviction(t *testing.T) {
	s := New[int](2)
	s.Put("a", 1, time.Minute)
	s.Put("b", 2, time.Minute)

	// Touch a so b becomes least recently used.
	if _, ok := s.Get("a"); !ok {
		t.Fatal("Expected a to be cached")
	}

	s.Put("c", 3, time.Minute)

	if _, ok := s.Get("b"); ok {
		t.Error("Expected b to be evicted as LRU")
	}
	if _, ok := s.Get("a"); !ok {
		t.Error("Expected a to survive eviction")
	}
	if _, ok := s.Get("c"); !ok {
		t.Error("Expected c to be cached")
	}
}

func TestGetOrLoad_SingleFlight(t *testing.T) {
	s := New[string](4)
	var calls int32

	const waiters = 10
	var wg sync.WaitGroup
	results := make([]string, waiters)
	errs := make([]error, waiters)

	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.GetOrLoad(context.Background(), "k", time.Minute, func(ctx context.Context) (string, error) {
				atomic.AddInt32(&calls, 1)
				time.Sleep(50 * time.Millisecond) // hold the flight open for all waiters
				return "shared", nil
			})
		}(i)
	}
	wg.Wait()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("Expected exactly 1 loader call for %d concurrent misses, got %d", waiters, got)
	}
	for i := 0; i < waiters; i++ {
		if errs[i] != nil {
			t.Errorf("Waiter %d got error: %v", i, errs[i])
		}
		if results[i] != "shared" {
			t.Errorf("Waiter %d got %q, want shared", i, results[i])
		}
	}
}

func TestGetOrLoad_CachesResult(t *testing.T) {
	s := New[string](4)
	var calls int32
	load := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "v", nil
	}

	if _, err := s.GetOrLoad(context.Background(), "k", time.Minute, load); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetOrLoad(context.Background(), "k", time.Minute, load); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("Expected second call to hit the cache, loader ran %d times", calls)
	}
}

func TestGetOrLoad_ErrorNotCached(t *testing.T) {
	s := New[string](4)
	boom := errors.New("boom")
	var calls int32

	_, err := s.GetOrLoad(context.Background(), "k", time.Minute, func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "", boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected loader error, got %v", err)
	}

	_, err = s.GetOrLoad(context.Background(), "k", time.Minute, func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "ok", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("Expected errors not to be cached, loader ran %d times", calls)
	}
}

func TestGetOrLoad_DetachedCancellation(t *testing.T) {
	s := New[string](4)
	started := make(chan struct{})
	release := make(chan struct{})

	// First waiter holds the flight open.
	type result struct {
		val string
		err error
	}
	survivor := make(chan result, 1)
	go func() {
		v, err := s.GetOrLoad(context.Background(), "k", time.Minute, func(ctx context.Context) (string, error) {
			close(started)
			<-release
			return "shared", nil
		})
		survivor <- result{v, err}
	}()
	<-started

	// Second waiter joins the same flight, then cancels.
	ctx, cancel := context.WithCancel(context.Background())
	cancelled := make(chan result, 1)
	go func() {
		v, err := s.GetOrLoad(ctx, "k", time.Minute, func(ctx context.Context) (string, error) {
			t.Error("second loader must not run while a flight is active")
			return "", nil
		})
		cancelled <- result{v, err}
	}()

	time.Sleep(20 * time.Millisecond) // let the second waiter join the flight
	cancel()

	got := <-cancelled
	if !errors.Is(got.err, context.Canceled) {
		t.Errorf("Cancelled waiter should get context.Canceled, got %v", got.err)
	}

	// The shared flight must be unaffected by the detached waiter.
	close(release)
	surv := <-survivor
	if surv.err != nil {
		t.Fatalf("Surviving waiter got error: %v", surv.err)
	}
	if surv.val != "shared" {
		t.Errorf("Surviving waiter got %q, want shared", surv.val)
	}
}
