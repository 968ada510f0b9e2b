package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// StockChangeInput carries a purchase or restock request.
type StockChangeInput struct {
	SweetID  string
	Quantity int
	UserID   string
	// IdempotencyKey is optional; only purchases honour it.
	IdempotencyKey string
}

// StockChangeResult is the updated record plus a confirmation message.
type StockChangeResult struct {
	Sweet   domain.Sweet `json:"sweet"`
	Message string       `json:"message"`
	// Replayed is true when the result was served for a repeated idempotency key.
	Replayed bool `json:"-"`
}

// InventoryService applies quantity mutations guarded by stock invariants.
type InventoryService interface {
	Purchase(ctx context.Context, in StockChangeInput) (*StockChangeResult, error)
	Restock(ctx context.Context, in StockChangeInput) (*StockChangeResult, error)
	Movements(ctx context.Context, sweetID string) ([]domain.StockMovement, error)
}
