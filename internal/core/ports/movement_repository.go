package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// MovementRepository persists the stock movement audit trail.
type MovementRepository interface {
	Insert(ctx context.Context, m *domain.StockMovement) error
	// ListBySweet returns movements for a sweet, newest first.
	ListBySweet(ctx context.Context, sweetID string) ([]domain.StockMovement, error)
}
