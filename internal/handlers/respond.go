package handlers

import (
	"errors"
	"net/http"

	"bistro/internal/common"

	"github.com/labstack/echo/v4"
)

// respondServiceError maps the service sentinel errors onto HTTP statuses at
// the handler boundary. Anything unrecognized is a 500.
func respondServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrValidation):
		return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("VALIDATION_ERROR", err.Error(), nil))
	case errors.Is(err, common.ErrNotFound):
		return c.JSON(http.StatusNotFound, common.CreateErrorResponse("NOT_FOUND", err.Error(), nil))
	case errors.Is(err, common.ErrForbidden):
		return c.JSON(http.StatusForbidden, common.CreateErrorResponse("FORBIDDEN", err.Error(), nil))
	case errors.Is(err, common.ErrCheckoutFailed):
		return c.JSON(http.StatusInternalServerError, common.CreateErrorResponse("CHECKOUT_FAILED", "checkout could not be completed", nil))
	default:
		return common.SendServerError(c, "operation could not be completed")
	}
}
