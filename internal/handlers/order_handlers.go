package handlers

import (
	"net/http"

	"bistro/internal/common"
	"bistro/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// OrderHandlers handles checkout and the delivery-side order endpoints
type OrderHandlers struct {
	orderService   services.OrderService
	receiptService services.ReceiptService
}

func NewOrderHandlers(orderService services.OrderService, receiptService services.ReceiptService) *OrderHandlers {
	return &OrderHandlers{
		orderService:   orderService,
		receiptService: receiptService,
	}
}

// ListOrderLines handles GET /cart/orders: the caller's order line items
// across all orders they have placed.
func (h *OrderHandlers) ListOrderLines(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	items, err := h.orderService.ListOrderLines(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// PlaceOrder handles POST /cart/orders: the transactional checkout.
func (h *OrderHandlers) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req struct {
		Date string `json:"date"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	order, err := h.orderService.PlaceOrder(ctx, userID, req.Date)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Order made",
		"order":   order,
	})
}

// ListAssignedOrders handles GET /orders. A caller outside the delivery-crew
// group receives an empty list rather than an error.
func (h *OrderHandlers) ListAssignedOrders(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	orders, err := h.orderService.ListAssignedOrders(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateOrder handles PATCH /orders/:id. Field permissions depend on the
// caller's role: crew sets status, managers set delivery_crew.
func (h *OrderHandlers) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	callerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	orderID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Status       *int    `json:"status"`
		DeliveryCrew *string `json:"delivery_crew"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	var crewID *uuid.UUID
	if req.DeliveryCrew != nil && *req.DeliveryCrew != "" {
		id, err := common.ValidateUUID(*req.DeliveryCrew, "delivery_crew")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		crewID = &id
	}

	message, err := h.orderService.UpdateOrder(ctx, callerID, orderID, req.Status, crewID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": message})
}

// DeleteOrder handles DELETE /orders/:id. Authentication only, no role gate;
// legacy behavior kept as-is, see DESIGN.md.
func (h *OrderHandlers) DeleteOrder(c echo.Context) error {
	orderID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.orderService.DeleteOrder(c.Request().Context(), orderID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Order deleted"})
}

// OrderReceipt handles GET /orders/:id/receipt, returning a PDF.
func (h *OrderHandlers) OrderReceipt(c echo.Context) error {
	orderID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	pdf, err := h.receiptService.OrderReceipt(c.Request().Context(), orderID)
	if err != nil {
		return respondServiceError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="receipt.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
