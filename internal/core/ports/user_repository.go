package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// UserRepository is the credential store. Email uniqueness is enforced by
// the implementation at write time and reported as domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
