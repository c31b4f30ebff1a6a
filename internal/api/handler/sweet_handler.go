package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mithaighar/sweetshop-api/internal/core/ports"
)

// SweetHandler handles HTTP requests for inventory operations.
type SweetHandler struct {
	service ports.SweetService
}

func NewSweetHandler(service ports.SweetService) *SweetHandler {
	return &SweetHandler{service: service}
}

// List handles GET /api/sweets.
//
// @Summary      List all sweets
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Sweet
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /sweets [get]
func (h *SweetHandler) List(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	sweets, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sweets)
}

// Search handles GET /api/sweets/search. All filters are optional and
// combined conjunctively; a price bound that does not parse as a number is
// silently dropped rather than rejected.
//
// @Summary      Search sweets
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        name      query     string  false  "Case-insensitive substring match on name"
// @Param        category  query     string  false  "Exact category match"
// @Param        minPrice  query     number  false  "Inclusive lower price bound"
// @Param        maxPrice  query     number  false  "Inclusive upper price bound"
// @Success      200       {array}   domain.Sweet
// @Failure      401       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /sweets/search [get]
func (h *SweetHandler) Search(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	filter := ports.ListSweetsFilter{
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
		MinPrice: parsePrice(c.QueryParam("minPrice")),
		MaxPrice: parsePrice(c.QueryParam("maxPrice")),
	}

	sweets, err := h.service.Search(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sweets)
}

// parsePrice returns a pointer to the parsed bound, or nil when the value is
// absent or not a number.
func parsePrice(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Add handles POST /api/sweets (admin only).
//
// @Summary      Add a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addSweetRequest  true  "Sweet details"
// @Success      201   {object}  domain.Sweet
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /sweets [post]
func (h *SweetHandler) Add(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req addSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sweet, err := h.service.Add(c.Request().Context(), ports.AddSweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    *req.Price,
		Quantity: *req.Quantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sweet)
}

// Update handles PUT /api/sweets/:id (admin only).
//
// @Summary      Update a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Sweet id (24-char hex)"
// @Param        body  body      updateSweetRequest  true  "Fields to update"
// @Success      200   {object}  domain.Sweet
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /sweets/{id} [put]
func (h *SweetHandler) Update(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req updateSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sweet, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.SweetPatch{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sweet)
}

// Delete handles DELETE /api/sweets/:id (admin only).
//
// @Summary      Delete a sweet
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Sweet id (24-char hex)"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /sweets/{id} [delete]
func (h *SweetHandler) Delete(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Deleted successfully"})
}

// Purchase handles POST /api/sweets/:id/purchase.
//
// @Summary      Purchase a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Sweet id (24-char hex)"
// @Param        body  body      quantityRequest  true  "Quantity to purchase"
// @Success      200   {object}  stockResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /sweets/{id}/purchase [post]
func (h *SweetHandler) Purchase(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sweet, err := h.service.Purchase(c.Request().Context(), c.Param("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stockResponse{Message: "Purchased", Sweet: sweet})
}

// Restock handles POST /api/sweets/:id/restock (admin only).
//
// @Summary      Restock a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Sweet id (24-char hex)"
// @Param        body  body      quantityRequest  true  "Quantity to add"
// @Success      200   {object}  stockResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /sweets/{id}/restock [post]
func (h *SweetHandler) Restock(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req quantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sweet, err := h.service.Restock(c.Request().Context(), c.Param("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stockResponse{Message: "Restocked", Sweet: sweet})
}
