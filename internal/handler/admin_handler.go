package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"mentorconnect/internal/service"
)

// AdminHandler handles admin dashboard endpoints. Role gating happens in the
// router; these handlers assume an admin caller.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Dashboard godoc
// @Summary Aggregate platform statistics
// @Tags admin
// @Produce json
// @Success 200 {object} service.DashboardStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.adminService.DashboardStats(c.Request().Context())
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, stats)
}

// RecentSessions godoc
// @Summary Most recent session requests
// @Tags admin
// @Produce json
// @Param limit query int false "Max rows (default 10)"
// @Success 200 {array} model.SessionRequest
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/sessions [get]
func (h *AdminHandler) RecentSessions(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	sessions, err := h.adminService.RecentSessions(c.Request().Context(), limit)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, sessions)
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, users)
}

// DeactivateUser godoc
// @Summary Deactivate a user account
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id}/deactivate [post]
func (h *AdminHandler) DeactivateUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := h.adminService.DeactivateUser(c.Request().Context(), uint(id)); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "user deactivated",
	})
}
