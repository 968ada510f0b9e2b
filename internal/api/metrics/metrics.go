// Package metrics defines and registers all custom Prometheus metrics for the
// sweet shop API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry on package init;
// HTTP request metrics are added per router by echoprometheus.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

const namespace = "sweetshop"

// ── Inventory metrics ─────────────────────────────────────────────────────────

// InventoryUnitsTotal counts units moved by successful stock operations.
// Label:
//   - operation: "purchase" or "restock"
var InventoryUnitsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inventory_units_total",
		Help:      "Total number of units purchased or restocked.",
	},
	[]string{"operation"},
)

// InventoryRejectionsTotal counts stock operations that were refused.
// Labels:
//   - operation: "purchase" or "restock"
//   - reason: see Reason
var InventoryRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inventory_rejections_total",
		Help:      "Total number of rejected purchase and restock requests.",
	},
	[]string{"operation", "reason"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts registration and login attempts.
// Labels:
//   - operation: "register" or "login"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by result.",
	},
	[]string{"operation", "result"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// SweetsTotal counts successful catalog mutations.
// Label:
//   - operation: "create", "update" or "delete"
var SweetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweets_total",
		Help:      "Total number of catalog mutations, by operation.",
	},
	[]string{"operation"},
)

// Reason maps an error to a low-cardinality label value.
func Reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrSweetNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrUserExists):
		return "user_exists"
	default:
		return "error"
	}
}

// Result is "success" for a nil error and "failure" otherwise.
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
