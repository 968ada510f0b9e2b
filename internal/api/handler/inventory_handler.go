package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/inventory-api/internal/api/metrics"
	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

const (
	headerIdempotencyKey     = "Idempotency-Key"
	headerIdempotentReplayed = "Idempotent-Replayed"
)

// InventoryHandler serves purchase, restock and the stock movement log.
type InventoryHandler struct {
	inventory ports.InventoryService
}

func NewInventoryHandler(inventory ports.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// Purchase takes quantity units out of stock.
//
// @Summary      Purchase a sweet
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id               path      string           true   "Sweet ID"
// @Param        Idempotency-Key  header    string           false  "Replays the first result for a repeated key"
// @Param        body             body      quantityRequest  true   "Units to buy"
// @Success      200              {object}  ports.StockChangeResult
// @Failure      400              {object}  messageResponse
// @Failure      401              {object}  messageResponse
// @Failure      404              {object}  messageResponse
// @Router       /api/sweets/{id}/purchase [post]
func (h *InventoryHandler) Purchase(c echo.Context) error {
	return h.change(c, "purchase", h.inventory.Purchase)
}

// Restock adds quantity units to stock.
//
// @Summary      Restock a sweet
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Sweet ID"
// @Param        body  body      quantityRequest  true  "Units to add"
// @Success      200   {object}  ports.StockChangeResult
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/sweets/{id}/restock [post]
func (h *InventoryHandler) Restock(c echo.Context) error {
	return h.change(c, "restock", h.inventory.Restock)
}

// Movements lists the stock movements of a sweet, newest first.
//
// @Summary      Stock movements
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sweet ID"
// @Success      200  {object}  movementListResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/sweets/{id}/movements [get]
func (h *InventoryHandler) Movements(c echo.Context) error {
	list, err := h.inventory.Movements(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movementListResponse{Movements: list, Count: len(list)})
}

type stockChangeFunc func(ctx context.Context, in ports.StockChangeInput) (*ports.StockChangeResult, error)

func (h *InventoryHandler) change(c echo.Context, operation string, apply stockChangeFunc) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req quantityRequest
	qty := 0
	if err = (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		err = domain.ErrInvalidQuantity
	} else {
		qty, err = parseQuantity(req.Quantity)
	}

	var res *ports.StockChangeResult
	if err == nil {
		res, err = apply(c.Request().Context(), ports.StockChangeInput{
			SweetID:        c.Param("id"),
			Quantity:       qty,
			UserID:         user.ID,
			IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
		})
	}
	if err != nil {
		metrics.InventoryRejectionsTotal.WithLabelValues(operation, metrics.Reason(err)).Inc()
		return err
	}

	if res.Replayed {
		c.Response().Header().Set(headerIdempotentReplayed, "true")
	} else {
		metrics.InventoryUnitsTotal.WithLabelValues(operation).Add(float64(qty))
	}
	return c.JSON(http.StatusOK, res)
}
