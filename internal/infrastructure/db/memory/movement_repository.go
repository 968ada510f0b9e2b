package memory

import (
	"context"
	"sync"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// MovementRepository is an in-memory ports.MovementRepository.
type MovementRepository struct {
	mu        sync.RWMutex
	movements []domain.StockMovement
}

func NewMovementRepository() *MovementRepository {
	return &MovementRepository{}
}

func (r *MovementRepository) Insert(_ context.Context, m *domain.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *m
	stored.ID = newID()
	r.movements = append(r.movements, stored)
	m.ID = stored.ID
	return nil
}

func (r *MovementRepository) ListBySweet(_ context.Context, sweetID string) ([]domain.StockMovement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.StockMovement, 0)
	for i := len(r.movements) - 1; i >= 0; i-- {
		if r.movements[i].SweetID == sweetID {
			out = append(out, r.movements[i])
		}
	}
	return out, nil
}
