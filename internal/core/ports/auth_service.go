package ports

import (
	"context"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in domain.Registration) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// TokenService issues and verifies stateless identity tokens.
type TokenService interface {
	Issue(userID string) (string, error)
	// Verify returns the user id carried by a valid, unexpired token or
	// domain.ErrUnauthorized.
	Verify(token string) (string, error)
}
