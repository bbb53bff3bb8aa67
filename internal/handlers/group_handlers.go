package handlers

import (
	"net/http"

	"bistro/internal/common"
	"bistro/internal/services"

	"github.com/labstack/echo/v4"
)

// GroupHandlers handles the admin-only manager/delivery-crew group endpoints
type GroupHandlers struct {
	rolesService services.RolesService
}

func NewGroupHandlers(rolesService services.RolesService) *GroupHandlers {
	return &GroupHandlers{rolesService: rolesService}
}

type groupMemberRequest struct {
	Username string `json:"username"`
}

// ListManagers handles GET /groups/manager/users
func (h *GroupHandlers) ListManagers(c echo.Context) error {
	users, err := h.rolesService.ListManagers(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	usernames := make([]map[string]string, 0, len(users))
	for _, u := range users {
		usernames = append(usernames, map[string]string{"username": u.Username})
	}
	return c.JSON(http.StatusOK, usernames)
}

// AddMember handles POST /groups/manager/users. The group actually edited
// depends on the caller's own role, not the route; see DESIGN.md.
func (h *GroupHandlers) AddMember(c echo.Context) error {
	ctx := c.Request().Context()

	callerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req groupMemberRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	message, err := h.rolesService.GrantGroup(ctx, callerID, req.Username)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": message})
}

// RemoveMember handles DELETE /groups/manager/users
func (h *GroupHandlers) RemoveMember(c echo.Context) error {
	ctx := c.Request().Context()

	callerID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req groupMemberRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	message, err := h.rolesService.RevokeGroup(ctx, callerID, req.Username)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}
