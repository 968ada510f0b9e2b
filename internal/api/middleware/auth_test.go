package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/infrastructure/db/memory"
)

// stubTokens accepts "good-<userID>" tokens.
type stubTokens struct{}

func (stubTokens) Issue(userID string) (string, error) { return "good-" + userID, nil }

func (stubTokens) Verify(token string) (string, error) {
	if len(token) > 5 && token[:5] == "good-" {
		return token[5:], nil
	}
	return "", domain.ErrUnauthorized
}

type brokenUsers struct{}

func (brokenUsers) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, errors.New("db down")
}

func (brokenUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, errors.New("db down")
}

func (brokenUsers) FindByID(context.Context, string) (*domain.User, error) {
	return nil, errors.New("db down")
}

func seedUser(t *testing.T, role string) (*memory.UserRepository, *domain.User) {
	t.Helper()
	repo := memory.NewUserRepository()
	u, err := repo.Create(context.Background(), &domain.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "x", Role: role})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return repo, u
}

func runAuth(t *testing.T, mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, *domain.User, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.User
	err := mw(func(c echo.Context) error {
		seen = UserFromContext(c)
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, seen, err
}

func assertHTTPError(t *testing.T, err error, code int, msg string) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected %d, got %d", code, he.Code)
	}
	if msg != "" && he.Message != msg {
		t.Fatalf("expected message %q, got %v", msg, he.Message)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	repo, u := seedUser(t, domain.RoleUser)

	rec, seen, err := runAuth(t, Auth(stubTokens{}, repo), "Bearer good-"+u.ID)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen == nil || seen.ID != u.ID {
		t.Fatalf("user not injected into context: %+v", seen)
	}
}

func TestAuthMiddleware_LowercaseScheme(t *testing.T) {
	repo, u := seedUser(t, domain.RoleUser)
	if _, _, err := runAuth(t, Auth(stubTokens{}, repo), "bearer good-"+u.ID); err != nil {
		t.Fatalf("expected lowercase scheme to be accepted, got %v", err)
	}
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	repo, _ := seedUser(t, domain.RoleUser)
	_, seen, err := runAuth(t, Auth(stubTokens{}, repo), "")
	assertHTTPError(t, err, http.StatusUnauthorized, msgNoToken)
	if seen != nil {
		t.Fatalf("next must not run")
	}
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	repo, _ := seedUser(t, domain.RoleUser)
	for _, h := range []string{"Token abc", "Bearer", "Bearer   ", "good-1"} {
		_, _, err := runAuth(t, Auth(stubTokens{}, repo), h)
		assertHTTPError(t, err, http.StatusUnauthorized, msgNoToken)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	repo, _ := seedUser(t, domain.RoleUser)
	_, _, err := runAuth(t, Auth(stubTokens{}, repo), "Bearer forged")
	assertHTTPError(t, err, http.StatusUnauthorized, msgTokenFailed)
}

func TestAuthMiddleware_UnknownUser(t *testing.T) {
	repo, _ := seedUser(t, domain.RoleUser)
	_, _, err := runAuth(t, Auth(stubTokens{}, repo), "Bearer good-deleted-user")
	assertHTTPError(t, err, http.StatusUnauthorized, msgTokenFailed)
}

func TestAuthMiddleware_StoreFailure(t *testing.T) {
	_, _, err := runAuth(t, Auth(stubTokens{}, brokenUsers{}), "Bearer good-1")
	var he *echo.HTTPError
	if err == nil || errors.As(err, &he) {
		t.Fatalf("expected a plain error to reach the error handler, got %v", err)
	}
}
