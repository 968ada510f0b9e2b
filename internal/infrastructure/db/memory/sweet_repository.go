package memory

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// SweetRepository is an in-memory ports.SweetRepository. Listing preserves
// insertion order, like a collection scan in Mongo.
type SweetRepository struct {
	mu    sync.RWMutex
	byID  map[string]*domain.Sweet
	order []string
	nowFn func() time.Time
}

func NewSweetRepository() *SweetRepository {
	return &SweetRepository{
		byID:  make(map[string]*domain.Sweet),
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

func (r *SweetRepository) Create(_ context.Context, s *domain.Sweet) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFn()
	stored := *s
	stored.ID = newID()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.byID[stored.ID] = &stored
	r.order = append(r.order, stored.ID)

	out := stored
	return &out, nil
}

func (r *SweetRepository) Find(_ context.Context, filter domain.SweetFilter) ([]domain.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Sweet, 0, len(r.order))
	for _, id := range r.order {
		s := r.byID[id]
		if filter.Matches(*s) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *SweetRepository) FindByID(_ context.Context, id string) (*domain.Sweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	out := *s
	return &out, nil
}

func (r *SweetRepository) Update(_ context.Context, id string, patch domain.SweetPatch) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	if patch.Name != nil {
		current.Name = *patch.Name
	}
	if patch.Category != nil {
		current.Category = *patch.Category
	}
	if patch.Price != nil {
		current.Price = *patch.Price
	}
	if patch.Quantity != nil {
		current.Quantity = *patch.Quantity
	}
	if patch.Description != nil {
		current.Description = *patch.Description
	}
	current.UpdatedAt = r.nowFn()

	out := *current
	return &out, nil
}

func (r *SweetRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return domain.ErrSweetNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *SweetRepository) AdjustQuantity(_ context.Context, id string, delta int) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	if delta > 0 && s.Quantity > math.MaxInt-delta {
		return nil, domain.ErrInvalidQuantity
	}
	if s.Quantity+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	s.Quantity += delta
	s.UpdatedAt = r.nowFn()

	out := *s
	return &out, nil
}
