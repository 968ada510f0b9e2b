package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/inventory-api/internal/api/metrics"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

// SweetHandler serves the catalog endpoints.
type SweetHandler struct {
	catalog ports.CatalogService
}

func NewSweetHandler(catalog ports.CatalogService) *SweetHandler {
	return &SweetHandler{catalog: catalog}
}

// Create adds a sweet to the catalog.
//
// @Summary      Create a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSweetRequest  true  "Sweet"
// @Success      201   {object}  sweetResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /api/sweets [post]
func (h *SweetHandler) Create(c echo.Context) error {
	var req createSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	sweet, err := h.catalog.Create(c.Request().Context(), req.toDraft())
	if err != nil {
		return err
	}

	metrics.SweetsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, sweetResponse{Sweet: sweet})
}

// List returns the whole catalog.
//
// @Summary      List sweets
// @Tags         sweets
// @Produce      json
// @Success      200  {object}  sweetListResponse
// @Router       /api/sweets [get]
func (h *SweetHandler) List(c echo.Context) error {
	sweets, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sweetListResponse{Sweets: sweets, Count: len(sweets)})
}

// Search filters the catalog. All parameters are optional and combine with AND.
//
// @Summary      Search sweets
// @Tags         sweets
// @Produce      json
// @Param        name      query     string  false  "Case-insensitive name substring"
// @Param        category  query     string  false  "Exact category"
// @Param        minPrice  query     number  false  "Inclusive lower price bound"
// @Param        maxPrice  query     number  false  "Inclusive upper price bound"
// @Success      200       {object}  sweetListResponse
// @Failure      400       {object}  messageResponse
// @Router       /api/sweets/search [get]
func (h *SweetHandler) Search(c echo.Context) error {
	var q searchQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	sweets, err := h.catalog.Search(c.Request().Context(), q.toFilter())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sweetListResponse{Sweets: sweets, Count: len(sweets)})
}

// Update changes any subset of a sweet's fields.
//
// @Summary      Update a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Sweet ID"
// @Param        body  body      updateSweetRequest  true  "Fields to change"
// @Success      200   {object}  sweetResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/sweets/{id} [put]
func (h *SweetHandler) Update(c echo.Context) error {
	var req updateSweetRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	sweet, err := h.catalog.Update(c.Request().Context(), c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}

	metrics.SweetsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, sweetResponse{Sweet: sweet})
}

// Delete removes a sweet permanently.
//
// @Summary      Delete a sweet
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sweet ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/sweets/{id} [delete]
func (h *SweetHandler) Delete(c echo.Context) error {
	if err := h.catalog.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.SweetsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Sweet deleted successfully"})
}
