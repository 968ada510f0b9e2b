// Command api runs the sweet shop inventory HTTP server.
//
// @title                       Sweet Shop Inventory API
// @version                     1.0
// @description                 Catalog, purchase and restock of sweets.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sweetshop/inventory-api/internal/api"
	"github.com/sweetshop/inventory-api/internal/core/service"
	"github.com/sweetshop/inventory-api/internal/infrastructure/config"
	"github.com/sweetshop/inventory-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		File:   cfg.LogFile,
	})

	infra, err := openInfra(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer infra.close(log)

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpire)
	e := api.NewRouter(api.Deps{
		Log:             log,
		Auth:            service.NewAuthService(infra.users, tokens, cfg.Auth.BcryptCost, log),
		Tokens:          tokens,
		Users:           infra.users,
		Catalog:         service.NewCatalogService(infra.sweets, log),
		Inventory:       service.NewInventoryService(infra.sweets, infra.movements, infra.idempotency, log),
		Limiter:         infra.limiter,
		ReadinessChecks: infra.checks,
		CORSOrigins:     cfg.HTTP.CORSOrigins,
		MetricsEnabled:  cfg.HTTP.MetricsEnabled,
		SwaggerEnabled:  cfg.HTTP.SwaggerEnabled,
	})

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Str("storage", cfg.StorageDriver).Msg("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
