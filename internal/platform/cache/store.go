package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ffl-tools/trophyline/internal/platform/resilience"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Store is an in-memory TTL cache. Concurrent fetches for the same key are
// collapsed into one upstream call.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	ttl     time.Duration
	flight  resilience.SingleFlight
	now     func() time.Time
}

func NewStore[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store[T]) Get(_ context.Context, key string) (T, bool) {
	var zero T
	if key == "" {
		return zero, false
	}

	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || now.After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

func (s *Store[T]) Set(_ context.Context, key string, value T) {
	if key == "" || s.ttl <= 0 {
		return
	}

	s.mu.Lock()
	s.entries[key] = entry[T]{value: value, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
}

// GetOrFetch returns the cached value for key or fetches it once, caching
// the result on success.
func (s *Store[T]) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if key == "" {
		return zero, fmt.Errorf("cache key is required")
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}
		fetched, err := fetch(ctx)
		if err != nil {
			return zero, err
		}
		s.Set(ctx, key, fetched)
		return fetched, nil
	})
	if err != nil {
		return zero, err
	}
	return value.(T), nil
}

func (s *Store[T]) Invalidate(_ context.Context, key string) {
	if key == "" {
		return
	}
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}
