package handlers

import (
	"net/http"

	"bistro/internal/common"
	"bistro/internal/services"

	"github.com/labstack/echo/v4"
)

// CartHandlers handles the caller's cart; every operation is scoped to the
// authenticated user.
type CartHandlers struct {
	cartService services.CartService
}

func NewCartHandlers(cartService services.CartService) *CartHandlers {
	return &CartHandlers{cartService: cartService}
}

// ListCart handles GET /cart/menu-items
func (h *CartHandlers) ListCart(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	lines, err := h.cartService.ListCart(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, lines)
}

// AddToCart handles POST /cart/menu-items
func (h *CartHandlers) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		MenuItem  string  `json:"menuitem"`
		Quantity  int     `json:"quantity"`
		UnitPrice float64 `json:"unit_price"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	menuItemID, err := common.ValidateUUID(req.MenuItem, "menuitem")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	line, err := h.cartService.AddToCart(ctx, userID, menuItemID, req.Quantity, req.UnitPrice)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, line)
}

// ClearCart handles DELETE /cart/menu-items
func (h *CartHandlers) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if err := h.cartService.ClearCart(ctx, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Cart cleared"})
}
