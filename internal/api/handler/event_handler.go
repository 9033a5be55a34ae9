package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alumnihub/alumni-network/internal/core/ports"
)

// EventHandler serves alumni events.
type EventHandler struct {
	eventService ports.EventService
}

func NewEventHandler(eventService ports.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List handles GET /api/events.
//
// @Summary      List upcoming events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]domain.Event
// @Failure      401  {object}  errorResponse
// @Router       /api/events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.eventService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(events))
}

// Create handles POST /api/events. Restricted to alumni and admins by the router.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body    body      createEventRequest  true   "Event"
// @Param        banner  formData  file                false  "Banner image"
// @Success      201  {object}  domain.Event
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	date, err := parseEventDate(req.Date)
	if err != nil {
		return err
	}

	banner, closeBanner, err := formUpload(c, "banner")
	if err != nil {
		return err
	}
	defer closeBanner()

	event, err := h.eventService.Create(c.Request().Context(), ports.CreateEventInput{
		Title:       req.Title,
		Type:        req.Type,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		IsVirtual:   req.IsVirtual,
		Capacity:    req.Capacity,
		Price:       req.Price,
		Banner:      banner,
		CreatedBy:   id.SubjectID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, event)
}

// Register handles POST /api/events/:id/register. Registering twice is a no-op.
//
// @Summary      Register for an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  eventRegistrationResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/events/{id}/register [post]
func (h *EventHandler) Register(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	event, err := h.eventService.Register(c.Request().Context(), c.Param("id"), id.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventRegistrationResponse{
		Message: "Successfully registered for event",
		Event:   event,
	})
}
