package handlers

import (
	"net/http"
	"strconv"

	"bistro/internal/common"
	"bistro/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers handles HTTP requests for menu categories
type CategoryHandlers struct {
	catalogService services.CatalogService
}

func NewCategoryHandlers(catalogService services.CatalogService) *CategoryHandlers {
	return &CategoryHandlers{catalogService: catalogService}
}

// ListCategories handles GET /categories
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	limit, offset := paginationParams(c, 50)
	categories, err := h.catalogService.ListCategories(c.Request().Context(), limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory handles POST /categories
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	var req struct {
		Slug  string `json:"slug"`
		Title string `json:"title"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	category, err := h.catalogService.CreateCategory(c.Request().Context(), req.Slug, req.Title)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

func paginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit := defaultLimit
	offset := 0
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 && l <= 1000 {
			limit = l
		}
	}
	if offsetParam := c.QueryParam("offset"); offsetParam != "" {
		if o, err := strconv.Atoi(offsetParam); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}
