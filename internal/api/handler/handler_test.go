package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

func TestParseQuantity(t *testing.T) {
	valid := map[string]int{"1": 1, "5": 5, " 42 ": 42}
	for raw, want := range valid {
		got, err := parseQuantity(json.RawMessage(strings.TrimSpace(raw)))
		if err != nil || got != want {
			t.Fatalf("parseQuantity(%q) = %d, %v; want %d", raw, got, err, want)
		}
	}

	for _, raw := range []string{"", "0", "-3", "2.5", `"5"`, `"abc"`, "null", "true", "[1]"} {
		if _, err := parseQuantity(json.RawMessage(raw)); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("parseQuantity(%q): expected ErrInvalidQuantity, got %v", raw, err)
		}
	}
}

func TestSearchQuery_ToFilter(t *testing.T) {
	f := searchQuery{Name: "choc", Category: "Chocolate", MinPrice: "1.5", MaxPrice: ""}.toFilter()
	if f.Name != "choc" || f.Category != domain.CategoryChocolate {
		t.Fatalf("unexpected filter: %+v", f)
	}
	if f.MinPrice == nil || *f.MinPrice != 1.5 {
		t.Fatalf("expected min price 1.5, got %v", f.MinPrice)
	}
	if f.MaxPrice != nil {
		t.Fatalf("expected no max price, got %v", *f.MaxPrice)
	}
}

func TestUpdateSweetRequest_ToPatch(t *testing.T) {
	cat := "Gummy"
	p := updateSweetRequest{Category: &cat}.toPatch()
	if p.Category == nil || *p.Category != domain.CategoryGummy {
		t.Fatalf("category not mapped: %+v", p)
	}
	if p.Name != nil || p.Price != nil || p.Quantity != nil || p.Description != nil {
		t.Fatalf("absent fields must stay nil: %+v", p)
	}
}

func TestValidator_SearchQuery(t *testing.T) {
	v := NewValidator()

	if err := v.Validate(&searchQuery{MinPrice: "2", MaxPrice: "10.50"}); err != nil {
		t.Fatalf("expected valid query, got %v", err)
	}

	err := v.Validate(&searchQuery{MinPrice: "cheap"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(ve.Violations) != 1 || ve.Violations[0].Field != "minPrice" || ve.Violations[0].Message != "minPrice must be a number" {
		t.Fatalf("unexpected violations: %+v", ve.Violations)
	}
}

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("Liveness returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "OK" || body["message"] != "Server is running" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestReadiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp 10.0.0.7:6379: connection refused") }

	cases := []struct {
		name   string
		checks map[string]ReadinessCheck
		code   int
		status string
	}{
		{"no dependencies", nil, http.StatusOK, "ok"},
		{"all healthy", map[string]ReadinessCheck{"mongodb": ok, "redis": ok}, http.StatusOK, "ok"},
		{"one down", map[string]ReadinessCheck{"mongodb": ok, "redis": down}, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			var logs strings.Builder
			if err := NewReadinessHandler(tc.checks, zerolog.New(&logs)).Readiness(c); err != nil {
				t.Fatalf("Readiness returned error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != tc.status {
				t.Fatalf("expected status %q, got %q", tc.status, body.Status)
			}
			if tc.status != "degraded" {
				return
			}
			if body.Dependencies["redis"].Status != "unhealthy" {
				t.Fatalf("expected redis unhealthy: %+v", body.Dependencies)
			}
			if strings.Contains(rec.Body.String(), "10.0.0.7") {
				t.Fatalf("ping error leaked to client: %s", rec.Body.String())
			}
			if !strings.Contains(logs.String(), "connection refused") {
				t.Fatalf("expected ping error in logs, got %q", logs.String())
			}
		})
	}
}

func TestMe_WithoutAuth(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), httptest.NewRecorder())
	if err := NewAuthHandler(nil).Me(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
