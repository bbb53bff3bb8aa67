package middleware

import (
	"net/http"

	"bistro/internal/common"
	"bistro/internal/services"

	"github.com/labstack/echo/v4"
)

// Authorizer is the declarative authorization layer: routes state the
// capability they need and this middleware enforces it, instead of each
// handler re-implementing group lookups.
type Authorizer struct {
	rolesSvc services.RolesService
}

func NewAuthorizer(rolesSvc services.RolesService) *Authorizer {
	return &Authorizer{rolesSvc: rolesSvc}
}

// RequireAdmin admits only callers with the staff flag set.
func (a *Authorizer) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			if _, ok := common.GetUserIDFromContext(ctx); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if !common.GetIsStaffFromContext(ctx) {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}

// RequireRole admits members of any of the named role groups.
func (a *Authorizer) RequireRole(roleNames ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			userID, ok := common.GetUserIDFromContext(ctx)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			for _, roleName := range roleNames {
				hasRole, err := a.rolesSvc.HasRole(ctx, userID, roleName)
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "Error checking role")
				}
				if hasRole {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}
