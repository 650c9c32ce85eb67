package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/gamewatchr/internal/platform/resilience"
)

type item[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is an in-process TTL cache of V. A ttl <= 0 keeps entries forever.
// Expired entries are dropped on read and swept at most once per ttl on write.
type Store[V any] struct {
	mu        sync.RWMutex
	items     map[string]item[V]
	ttl       time.Duration
	lastSweep time.Time
	flight    resilience.SingleFlight
	now       func() time.Time
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		items: make(map[string]item[V]),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if s.expired(it, s.now()) {
		s.mu.Lock()
		if current, still := s.items[key]; still && current.expiresAt.Equal(it.expiresAt) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return zero, false
	}

	return it.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	now := s.now()
	it := item[V]{value: value}
	if s.ttl > 0 {
		it.expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = it
	if s.ttl > 0 && now.Sub(s.lastSweep) >= s.ttl {
		for k, existing := range s.items {
			if s.expired(existing, now) {
				delete(s.items, k)
			}
		}
		s.lastSweep = now
	}
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// GetOrLoad returns the cached value or runs loader once per key across
// concurrent callers. Loader errors are returned and never cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}
	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	shared, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	value, _ := shared.(V)
	return value, nil
}

func (s *Store[V]) expired(it item[V], now time.Time) bool {
	return s.ttl > 0 && !it.expiresAt.After(now)
}
