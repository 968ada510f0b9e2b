package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const msgTooManyRequests = "Too many requests, please try again later"

// Limiter counts one hit for scope and reports whether it is still allowed.
type Limiter interface {
	Allow(ctx context.Context, scope string) (bool, time.Duration, error)
}

// RateLimit throttles requests per client IP under the given name. Limiter
// failures are logged and the request is let through.
func RateLimit(l Limiter, name string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, retry, err := l.Allow(c.Request().Context(), name+":"+c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("limiter", name).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !ok {
				c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(int(retry.Seconds())))
				return echo.NewHTTPError(http.StatusTooManyRequests, msgTooManyRequests)
			}
			return next(c)
		}
	}
}
