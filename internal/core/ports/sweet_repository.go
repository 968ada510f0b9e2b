package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// SweetRepository is the catalog store. Unknown or malformed ids are
// reported as domain.ErrSweetNotFound.
type SweetRepository interface {
	Create(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error)
	Find(ctx context.Context, filter domain.SweetFilter) ([]domain.Sweet, error)
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	// Update writes the non-nil fields of patch onto an existing record and
	// refreshes UpdatedAt. Fields the patch leaves nil are not touched.
	Update(ctx context.Context, id string, patch domain.SweetPatch) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
	// AdjustQuantity atomically adds delta to the stored quantity. A negative
	// delta is applied only when the current quantity covers it; otherwise
	// domain.ErrInsufficientStock is returned and nothing is written. A
	// positive delta that would overflow int is domain.ErrInvalidQuantity.
	AdjustQuantity(ctx context.Context, id string, delta int) (*domain.Sweet, error)
}
