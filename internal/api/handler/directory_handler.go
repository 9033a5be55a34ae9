package handler

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

// directoryRoles are the roles listed by the member directory.
var directoryRoles = []string{domain.RoleAlumni, domain.RoleStudent}

// DirectoryHandler serves the member directory and the admin user listing.
type DirectoryHandler struct {
	profileService ports.ProfileService
}

func NewDirectoryHandler(profileService ports.ProfileService) *DirectoryHandler {
	return &DirectoryHandler{profileService: profileService}
}

type listUsersRequest struct {
	Query          string   `query:"q"`
	Roles          []string `query:"role"`
	Company        string   `query:"company"`
	Location       string   `query:"location"`
	GraduationYear int      `query:"graduation_year"`
	Page           int      `query:"page"`
	Limit          int      `query:"limit"`
}

func (r listUsersRequest) toInput(defaultRoles []string) ports.ListUsersInput {
	roles := splitList(r.Roles)
	if len(roles) == 0 {
		roles = defaultRoles
	}
	return ports.ListUsersInput{
		Roles:          roles,
		Search:         r.Query,
		Company:        r.Company,
		Location:       r.Location,
		GraduationYear: r.GraduationYear,
		Page:           r.Page,
		Limit:          r.Limit,
	}
}

// List returns a page of the member directory.
//
// @Summary      List alumni and students
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        q                query     string  false  "Search name, company or title"
// @Param        role             query     string  false  "alumni or student"
// @Param        company          query     string  false  "Company"
// @Param        location         query     string  false  "Location"
// @Param        graduation_year  query     int     false  "Graduation year"
// @Param        page             query     int     false  "Page number (default 1)"
// @Param        limit            query     int     false  "Page size (default 20, max 100)"
// @Success      200  {object}  listUsersResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/alumni [get]
func (h *DirectoryHandler) List(c echo.Context) error {
	return h.list(c, directoryRoles)
}

// ListAll returns a page of every account regardless of role.
//
// @Summary      List all users (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        q      query     string  false  "Search name, company or title"
// @Param        role   query     string  false  "Role filter"
// @Param        page   query     int     false  "Page number (default 1)"
// @Param        limit  query     int     false  "Page size (default 20, max 100)"
// @Success      200  {object}  listUsersResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *DirectoryHandler) ListAll(c echo.Context) error {
	return h.list(c, nil)
}

func (h *DirectoryHandler) list(c echo.Context, defaultRoles []string) error {
	var req listUsersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	in := req.toInput(defaultRoles)
	if defaultRoles != nil {
		for _, r := range in.Roles {
			if !slices.Contains(defaultRoles, r) {
				return echo.NewHTTPError(http.StatusBadRequest, "role must be one of: alumni student")
			}
		}
	}

	res, err := h.profileService.List(c.Request().Context(), in)
	if err != nil {
		return err
	}

	items := res.Items
	if items == nil {
		items = []*domain.User{}
	}
	return c.JSON(http.StatusOK, listUsersResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      res.Total,
			Page:       res.Page,
			Limit:      res.Limit,
			TotalPages: res.TotalPages,
		},
	})
}

// Get returns a single member profile.
//
// @Summary      Get a member profile
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/alumni/{id} [get]
func (h *DirectoryHandler) Get(c echo.Context) error {
	user, err := h.profileService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
