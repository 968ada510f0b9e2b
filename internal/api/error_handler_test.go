package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

func handleError(t *testing.T, log zerolog.Logger, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(log)(err, c)

	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.ErrUserExists, http.StatusBadRequest, "User already exists"},
		{domain.ErrInvalidQuantity, http.StatusBadRequest, "Invalid quantity"},
		{fmt.Errorf("purchase: %w", domain.ErrInsufficientStock), http.StatusBadRequest, "Insufficient quantity available"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "Not authorized"},
		{domain.ErrForbidden, http.StatusForbidden, "Access forbidden"},
		{fmt.Errorf("update sweet: %w", domain.ErrSweetNotFound), http.StatusNotFound, "Sweet not found"},
		{echo.NewHTTPError(http.StatusTooManyRequests, "slow down"), http.StatusTooManyRequests, "slow down"},
	}
	for _, tc := range cases {
		rec, body := handleError(t, zerolog.Nop(), tc.err)
		assert.Equal(t, tc.code, rec.Code, tc.err.Error())
		assert.Equal(t, tc.msg, body.Message)
		assert.Empty(t, body.Errors)
	}
}

func TestHTTPErrorHandler_Validation(t *testing.T) {
	err := domain.NewValidationError(
		domain.FieldViolation{Field: "name", Message: "Please provide a sweet name"},
		domain.FieldViolation{Field: "price", Message: "Price cannot be negative"},
	)

	rec, body := handleError(t, zerolog.Nop(), err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please provide a sweet name, Price cannot be negative", body.Message)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "price", body.Errors[1].Field)
}

func TestHTTPErrorHandler_UnexpectedErrorIsHidden(t *testing.T) {
	var logs bytes.Buffer
	rec, body := handleError(t, zerolog.New(&logs), errors.New("mongo: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error", body.Message)
	assert.NotContains(t, rec.Body.String(), "mongo")
	assert.True(t, strings.Contains(logs.String(), "connection reset"), "cause must be logged")
}
