package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alumnihub/alumni-network/internal/core/ports"
)

// DashboardHandler serves the personal alumni dashboard.
type DashboardHandler struct {
	dashboardService ports.DashboardService
}

func NewDashboardHandler(dashboardService ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats handles GET /api/alumni-dashboard/stats.
//
// @Summary      Dashboard counters
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Failure      401  {object}  errorResponse
// @Router       /api/alumni-dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	stats, err := h.dashboardService.Stats(c.Request().Context(), id.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Activities handles GET /api/alumni-dashboard/activities.
//
// @Summary      Recent activity feed
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]domain.Activity
// @Failure      401  {object}  errorResponse
// @Router       /api/alumni-dashboard/activities [get]
func (h *DashboardHandler) Activities(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	feed, err := h.dashboardService.Activities(c.Request().Context(), id.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(feed))
}

// Suggestions handles GET /api/alumni-dashboard/networking-suggestions.
//
// @Summary      Networking suggestions
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]domain.User
// @Failure      401  {object}  errorResponse
// @Router       /api/alumni-dashboard/networking-suggestions [get]
func (h *DashboardHandler) Suggestions(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	users, err := h.dashboardService.Suggestions(c.Request().Context(), id.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(users))
}

// Events handles GET /api/alumni-dashboard/events.
//
// @Summary      Upcoming events with the caller's registration state
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]ports.DashboardEvent
// @Failure      401  {object}  errorResponse
// @Router       /api/alumni-dashboard/events [get]
func (h *DashboardHandler) Events(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	events, err := h.dashboardService.UpcomingEvents(c.Request().Context(), id.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(events))
}

// RecentAlumni handles GET /api/alumni-dashboard/recent-alumni.
//
// @Summary      Newest alumni
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]domain.User
// @Router       /api/alumni-dashboard/recent-alumni [get]
func (h *DashboardHandler) RecentAlumni(c echo.Context) error {
	users, err := h.dashboardService.RecentAlumni(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(users))
}
