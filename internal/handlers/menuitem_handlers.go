package handlers

import (
	"net/http"

	"bistro/internal/common"
	"bistro/internal/models"
	"bistro/internal/services"

	"github.com/labstack/echo/v4"
)

// MenuItemHandlers handles HTTP requests for menu items
type MenuItemHandlers struct {
	catalogService services.CatalogService
}

func NewMenuItemHandlers(catalogService services.CatalogService) *MenuItemHandlers {
	return &MenuItemHandlers{catalogService: catalogService}
}

// ListMenuItems handles GET /menu-items. Supports ?category=<slug> and
// ?ordering=price|-price.
func (h *MenuItemHandlers) ListMenuItems(c echo.Context) error {
	limit, offset := paginationParams(c, 50)

	filter := &models.MenuItemFilter{
		CategorySlug: c.QueryParam("category"),
		Limit:        limit,
		Offset:       offset,
	}
	switch c.QueryParam("ordering") {
	case "price":
		filter.OrderByPrice = "asc"
	case "-price":
		filter.OrderByPrice = "desc"
	}

	items, err := h.catalogService.ListMenuItems(c.Request().Context(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// CreateMenuItem handles POST /menu-items
func (h *MenuItemHandlers) CreateMenuItem(c echo.Context) error {
	var req struct {
		Title    string  `json:"title"`
		Price    float64 `json:"price"`
		Featured bool    `json:"featured"`
		Category string  `json:"category"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	categoryID, err := common.ValidateUUID(req.Category, "category")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	item, err := h.catalogService.CreateMenuItem(c.Request().Context(), req.Title, req.Price, req.Featured, categoryID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// GetMenuItem handles GET /menu-items/:id
func (h *MenuItemHandlers) GetMenuItem(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	item, err := h.catalogService.GetMenuItem(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// UpdateFeatured handles PATCH /menu-items/:id. Any request that does not
// carry a truthy `featured` is rejected — including legitimate "unfeature"
// updates. Known legacy defect reproduced for compatibility; see DESIGN.md.
func (h *MenuItemHandlers) UpdateFeatured(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Featured *bool `json:"featured"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if req.Featured == nil || !*req.Featured {
		return common.SendValidationError(c, "featured", "Incorrect input")
	}

	if err := h.catalogService.SetFeatured(c.Request().Context(), id, *req.Featured); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Featured flag updated"})
}

// DeleteMenuItem handles DELETE /menu-items/:id
func (h *MenuItemHandlers) DeleteMenuItem(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.catalogService.DeleteMenuItem(c.Request().Context(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Menu item deleted"})
}

// UploadImage handles POST /menu-items/:id/image (multipart form, "image" field)
func (h *MenuItemHandlers) UploadImage(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return common.SendValidationError(c, "image", "image file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read upload")
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.catalogService.UploadMenuItemImage(c.Request().Context(), id, file, fileHeader.Size, contentType); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Image uploaded"})
}

// GetImageURL handles GET /menu-items/:id/image
func (h *MenuItemHandlers) GetImageURL(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	url, err := h.catalogService.MenuItemImageURL(c.Request().Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
