package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sweetshop/inventory-api/internal/core/ports"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore keeps purchase results in Redis as JSON.
// Key format: idem:<scoped key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. Results expire after ttl (24h when zero).
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Load returns the stored result, or nil when the key is unknown.
func (s *IdempotencyStore) Load(ctx context.Context, key string) (*ports.StockChangeResult, error) {
	raw, err := s.client.Get(ctx, idempotencyKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("idempotency load: %w", err)
	}

	var res ports.StockChangeResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("idempotency decode: %w", err)
	}
	return &res, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, key string, result *ports.StockChangeResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("idempotency encode: %w", err)
	}
	if err := s.client.Set(ctx, idempotencyKey(key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency save: %w", err)
	}
	return nil
}

func idempotencyKey(key string) string {
	return "idem:" + key
}
