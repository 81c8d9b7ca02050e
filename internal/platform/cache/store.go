package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pitchside/internal/platform/resilience"
)

// Kind partitions the cache by payload type so each payload can carry
// its own TTL. Live-leaning payloads expire fast, static ones slowly.
type Kind string

const (
	KindPrimaryFixtures Kind = "primary-fixtures"
	KindMediaCandidates Kind = "media-candidates"
)

// Key identifies one cached payload: a kind plus the YYYY-MM-DD date it
// covers.
type Key struct {
	Kind Kind
	Date string
}

func (k Key) valid() bool {
	return k.Kind != "" && k.Date != ""
}

func (k Key) String() string {
	return string(k.Kind) + ":" + k.Date
}

type entry struct {
	value     any
	expiresAt time.Time
}

type Store struct {
	mu      sync.RWMutex
	entries map[Key]entry
	ttls    map[Kind]time.Duration
	flight  resilience.SingleFlight
}

// NewStore builds a store with per-kind TTLs. A kind missing from ttls,
// or mapped to zero, never expires.
func NewStore(ttls map[Kind]time.Duration) *Store {
	owned := make(map[Kind]time.Duration, len(ttls))
	for kind, ttl := range ttls {
		owned[kind] = ttl
	}
	return &Store{
		entries: make(map[Key]entry),
		ttls:    owned,
	}
}

func (s *Store) Get(_ context.Context, key Key) (any, bool) {
	if !key.valid() {
		return nil, false
	}

	now := time.Now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(now) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key Key, value any) {
	if !key.valid() {
		return
	}

	expiresAt := time.Time{}
	if ttl := s.ttls[key.Kind]; ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry{
		value:     value,
		expiresAt: expiresAt,
	}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key Key) {
	if !key.valid() {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) GetOrLoad(ctx context.Context, key Key, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if !key.valid() {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key.String(), func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}
