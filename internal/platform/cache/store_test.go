package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(map[Kind]time.Duration{KindPrimaryFixtures: time.Minute})
	key := Key{Kind: KindPrimaryFixtures, Date: "2026-03-14"}
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), key, loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(map[Kind]time.Duration{KindPrimaryFixtures: time.Minute})
	key := Key{Kind: KindPrimaryFixtures, Date: "2026-03-14"}
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), key, loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), key, loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_TTLPerKind(t *testing.T) {
	t.Parallel()

	store := NewStore(map[Kind]time.Duration{
		KindPrimaryFixtures: 10 * time.Millisecond,
		KindMediaCandidates: time.Hour,
	})
	ctx := context.Background()
	fast := Key{Kind: KindPrimaryFixtures, Date: "2026-03-14"}
	slow := Key{Kind: KindMediaCandidates, Date: "2026-03-14"}

	store.Set(ctx, fast, "stats")
	store.Set(ctx, slow, "badges")

	time.Sleep(30 * time.Millisecond)

	if _, ok := store.Get(ctx, fast); ok {
		t.Fatal("short-TTL entry should have expired")
	}
	if v, ok := store.Get(ctx, slow); !ok || v != "badges" {
		t.Fatalf("long-TTL entry should survive, got %v %v", v, ok)
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store := NewStore(nil)
	ctx := context.Background()

	store.Set(ctx, Key{Kind: KindPrimaryFixtures, Date: "2026-03-14"}, "a")
	store.Set(ctx, Key{Kind: KindPrimaryFixtures, Date: "2026-03-15"}, "b")

	store.Delete(ctx, Key{Kind: KindPrimaryFixtures, Date: "2026-03-14"})

	if _, ok := store.Get(ctx, Key{Kind: KindPrimaryFixtures, Date: "2026-03-14"}); ok {
		t.Fatal("deleted entry still present")
	}
	if v, ok := store.Get(ctx, Key{Kind: KindPrimaryFixtures, Date: "2026-03-15"}); !ok || v != "b" {
		t.Fatalf("other date must be untouched, got %v %v", v, ok)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
