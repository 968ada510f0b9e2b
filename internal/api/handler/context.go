package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sweetshop/inventory-api/internal/api/middleware"
	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// currentUser returns the user resolved by the Auth middleware. A handler
// mounted without Auth gets domain.ErrUnauthorized rather than a nil user.
func currentUser(c echo.Context) (*domain.User, error) {
	user := middleware.UserFromContext(c)
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
