package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// CatalogService covers create/list/search/update/delete over sweets.
type CatalogService interface {
	Create(ctx context.Context, draft domain.SweetDraft) (*domain.Sweet, error)
	List(ctx context.Context) ([]domain.Sweet, error)
	Search(ctx context.Context, filter domain.SweetFilter) ([]domain.Sweet, error)
	Update(ctx context.Context, id string, patch domain.SweetPatch) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error
}
