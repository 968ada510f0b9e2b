package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

func TestUserRepository_UniqueEmail(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()

	u, err := r.Create(ctx, &domain.User{Name: "A", Email: "a@example.com", Role: domain.RoleUser})
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	_, err = r.Create(ctx, &domain.User{Name: "B", Email: "a@example.com"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	// Stored as given: a different case is a different email.
	_, err = r.Create(ctx, &domain.User{Name: "C", Email: "A@example.com"})
	assert.NoError(t, err)
}

func TestUserRepository_Lookups(t *testing.T) {
	r := NewUserRepository()
	ctx := context.Background()
	u, err := r.Create(ctx, &domain.User{Name: "A", Email: "a@example.com"})
	require.NoError(t, err)

	byEmail, err := r.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", byID.Email)

	_, err = r.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = r.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
