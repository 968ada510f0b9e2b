package handler

import (
	"encoding/json"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

type userResponse struct {
	User domain.PublicUser `json:"user"`
}

type createSweetRequest struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Description string   `json:"description"`
}

// updateSweetRequest is a partial update; absent fields keep their value.
type updateSweetRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Description *string  `json:"description"`
}

type searchQuery struct {
	Name     string `query:"name"`
	Category string `query:"category"`
	MinPrice string `query:"minPrice" validate:"omitempty,numeric"`
	MaxPrice string `query:"maxPrice" validate:"omitempty,numeric"`
}

// quantityRequest keeps the raw JSON so that strings, fractions and null
// can all be rejected as an invalid quantity rather than a bind error.
type quantityRequest struct {
	Quantity json.RawMessage `json:"quantity" swaggertype:"integer"`
}

type sweetResponse struct {
	Sweet *domain.Sweet `json:"sweet"`
}

type sweetListResponse struct {
	Sweets []domain.Sweet `json:"sweets"`
	Count  int            `json:"count"`
}

type movementListResponse struct {
	Movements []domain.StockMovement `json:"movements"`
	Count     int                    `json:"count"`
}

type messageResponse struct {
	Message string `json:"message"`
}
