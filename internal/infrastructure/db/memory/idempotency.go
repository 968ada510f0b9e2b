package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sweetshop/inventory-api/internal/core/ports"
)

// IdempotencyStore keeps purchase results in process memory until ttl
// elapses. Expired entries are dropped lazily on lookup.
type IdempotencyStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]idempotencyEntry
	nowFn   func() time.Time
}

type idempotencyEntry struct {
	result    ports.StockChangeResult
	expiresAt time.Time
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{
		ttl:     ttl,
		entries: make(map[string]idempotencyEntry),
		nowFn:   time.Now,
	}
}

func (s *IdempotencyStore) Load(_ context.Context, key string) (*ports.StockChangeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if !s.nowFn().Before(e.expiresAt) {
		delete(s.entries, key)
		return nil, nil
	}
	out := e.result
	return &out, nil
}

func (s *IdempotencyStore) Save(_ context.Context, key string, result *ports.StockChangeResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = idempotencyEntry{result: *result, expiresAt: s.nowFn().Add(s.ttl)}
	return nil
}
