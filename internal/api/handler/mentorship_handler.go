package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

// MentorshipHandler serves mentorship offerings and the requests made against them.
type MentorshipHandler struct {
	mentorshipService ports.MentorshipService
}

func NewMentorshipHandler(mentorshipService ports.MentorshipService) *MentorshipHandler {
	return &MentorshipHandler{mentorshipService: mentorshipService}
}

type createMentorshipRequest struct {
	MentorName string   `json:"mentorName" form:"mentorName"`
	Title      string   `json:"title"      form:"title"`
	Expertise  []string `json:"expertise"  form:"expertise"`
	Capacity   int      `json:"capacity"   form:"capacity"`
	Bio        string   `json:"bio"        form:"bio"`
	Location   string   `json:"location"   form:"location"`
	IsRemote   bool     `json:"isRemote"   form:"isRemote"`
}

type mentorshipRequestBody struct {
	Topic   string `json:"topic"   form:"topic"`
	Message string `json:"message" form:"message"`
}

type respondRequest struct {
	Response string `json:"response" validate:"required,oneof=accept decline"`
}

type respondResponse struct {
	Message string                    `json:"message"`
	Request *domain.MentorshipRequest `json:"request"`
}

// List handles GET /api/mentorships.
//
// @Summary      List mentorship offerings
// @Tags         mentorships
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]domain.Mentorship
// @Failure      401  {object}  errorResponse
// @Router       /api/mentorships [get]
func (h *MentorshipHandler) List(c echo.Context) error {
	ms, err := h.mentorshipService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(ms))
}

// Create handles POST /api/mentorships. The caller becomes the mentor.
//
// @Summary      Publish a mentorship offering
// @Tags         mentorships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMentorshipRequest  true  "Offering"
// @Success      201   {object}  domain.Mentorship
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/mentorships [post]
func (h *MentorshipHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createMentorshipRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	m, err := h.mentorshipService.Create(c.Request().Context(), ports.CreateMentorshipInput{
		MentorID:   id.SubjectID,
		MentorName: req.MentorName,
		Title:      req.Title,
		Expertise:  splitList(req.Expertise),
		Capacity:   req.Capacity,
		Bio:        req.Bio,
		Location:   req.Location,
		IsRemote:   req.IsRemote,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

// Request handles POST /api/mentorships/:id/requests.
//
// @Summary      Request mentorship
// @Tags         mentorships
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Mentorship ID"
// @Param        body  body      mentorshipRequestBody  true  "Request"
// @Success      201   {object}  domain.MentorshipRequest
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/mentorships/{id}/requests [post]
func (h *MentorshipHandler) Request(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req mentorshipRequestBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	r, err := h.mentorshipService.Request(c.Request().Context(), ports.RequestMentorshipInput{
		MentorshipID: c.Param("id"),
		StudentID:    id.SubjectID,
		Topic:        req.Topic,
		Message:      req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// Pending handles GET /api/alumni-dashboard/mentorship-requests.
//
// @Summary      Pending mentorship requests addressed to the caller
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]domain.MentorshipRequest
// @Failure      401  {object}  errorResponse
// @Router       /api/alumni-dashboard/mentorship-requests [get]
func (h *MentorshipHandler) Pending(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	reqs, err := h.mentorshipService.PendingRequests(c.Request().Context(), id.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(reqs))
}

// Respond handles POST /api/alumni-dashboard/mentorship-requests/:id/respond.
//
// @Summary      Accept or decline a mentorship request
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Request ID"
// @Param        body  body      respondRequest  true  "accept or decline"
// @Success      200   {object}  respondResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/alumni-dashboard/mentorship-requests/{id}/respond [post]
func (h *MentorshipHandler) Respond(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req respondRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	r, err := h.mentorshipService.Respond(c.Request().Context(), c.Param("id"), id.SubjectID, req.Response)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, respondResponse{
		Message: "Mentorship request " + string(r.Status),
		Request: r,
	})
}
