package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/sweetshop/inventory-api/docs"
	"github.com/sweetshop/inventory-api/internal/api/handler"
	"github.com/sweetshop/inventory-api/internal/api/middleware"
	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

// Deps carries everything the router needs. Limiter and ReadinessChecks are
// optional.
type Deps struct {
	Log zerolog.Logger

	Auth      ports.AuthService
	Tokens    ports.TokenService
	Users     ports.UserRepository
	Catalog   ports.CatalogService
	Inventory ports.InventoryService

	Limiter         middleware.Limiter
	ReadinessChecks map[string]handler.ReadinessCheck

	CORSOrigins    []string
	MetricsEnabled bool
	SwaggerEnabled bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Idempotency-Key"},
		AllowCredentials: true,
	}))

	// --- Metrics ---
	// Each router owns its HTTP metrics registry so several routers can live
	// in one process (tests); domain counters stay on the default registry.
	if d.MetricsEnabled {
		reg := prometheus.NewRegistry()
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "sweetshop",
			Registerer: reg,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		}))
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
		}))
	}

	if d.SwaggerEnabled {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth)
	sweetHandler := handler.NewSweetHandler(d.Catalog)
	inventoryHandler := handler.NewInventoryHandler(d.Inventory)
	requireAuth := middleware.Auth(d.Tokens, d.Users)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register, limit(d, "register")...)
	auth.POST("/login", authHandler.Login, limit(d, "login")...)
	auth.GET("/me", authHandler.Me, requireAuth)

	// --- Sweet routes ---
	sweets := e.Group("/api/sweets")
	sweets.GET("", sweetHandler.List)
	sweets.GET("/search", sweetHandler.Search)
	sweets.POST("", sweetHandler.Create, requireAuth, adminOnly)
	sweets.PUT("/:id", sweetHandler.Update, requireAuth, adminOnly)
	sweets.DELETE("/:id", sweetHandler.Delete, requireAuth, adminOnly)
	sweets.POST("/:id/purchase", inventoryHandler.Purchase, requireAuth)
	sweets.POST("/:id/restock", inventoryHandler.Restock, requireAuth, adminOnly)
	sweets.GET("/:id/movements", inventoryHandler.Movements, requireAuth, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.ReadinessChecks, d.Log)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}

func limit(d Deps, name string) []echo.MiddlewareFunc {
	if d.Limiter == nil {
		return nil
	}
	return []echo.MiddlewareFunc{middleware.RateLimit(d.Limiter, name, d.Log)}
}
