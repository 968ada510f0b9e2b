package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

func TestIdempotencyStore_SaveLoadExpire(t *testing.T) {
	s := NewIdempotencyStore(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.nowFn = func() time.Time { return now }
	ctx := context.Background()

	got, err := s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	res := &ports.StockChangeResult{Sweet: domain.Sweet{ID: "x", Quantity: 9}, Message: "ok"}
	require.NoError(t, s.Save(ctx, "k", res))

	got, err = s.Load(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ok", got.Message)
	assert.Equal(t, 9, got.Sweet.Quantity)

	now = now.Add(time.Minute)
	got, err = s.Load(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}
