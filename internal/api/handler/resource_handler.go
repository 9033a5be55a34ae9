package handler

import (
	"mime"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/alumnihub/alumni-network/internal/core/ports"
)

// ResourceHandler serves the shared resource library.
type ResourceHandler struct {
	resourceService ports.ResourceService
}

func NewResourceHandler(resourceService ports.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

type resourceRequest struct {
	Title       string   `json:"title"       form:"title"`
	Description string   `json:"description" form:"description"`
	Category    string   `json:"category"    form:"category"`
	Type        string   `json:"type"        form:"type"`
	Tags        []string `json:"tags"        form:"tags"`
}

type bookmarkResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

// bindResource reads the resource form and its optional "file" attachment.
func bindResource(c echo.Context) (ports.ResourceInput, func(), error) {
	var req resourceRequest
	if err := c.Bind(&req); err != nil {
		return ports.ResourceInput{}, func() {}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	file, closeFile, err := formUpload(c, "file")
	if err != nil {
		return ports.ResourceInput{}, closeFile, err
	}
	return ports.ResourceInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Type:        req.Type,
		Tags:        splitList(req.Tags),
		File:        file,
	}, closeFile, nil
}

// List handles GET /api/resources.
//
// @Summary      List resources
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]domain.Resource
// @Failure      401  {object}  errorResponse
// @Router       /api/resources [get]
func (h *ResourceHandler) List(c echo.Context) error {
	rs, err := h.resourceService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newList(rs))
}

// Get handles GET /api/resources/:id.
//
// @Summary      Get a resource
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Resource ID"
// @Success      200  {object}  domain.Resource
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/resources/{id} [get]
func (h *ResourceHandler) Get(c echo.Context) error {
	r, err := h.resourceService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Create handles POST /api/resources.
//
// @Summary      Share a resource
// @Tags         resources
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      resourceRequest  true   "Resource"
// @Param        file  formData  file             false  "Attachment"
// @Success      201   {object}  domain.Resource
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/resources [post]
func (h *ResourceHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	in, closeFile, err := bindResource(c)
	defer closeFile()
	if err != nil {
		return err
	}

	r, err := h.resourceService.Create(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// Update handles PUT /api/resources/:id. Only the author or an admin may update.
//
// @Summary      Update a resource
// @Tags         resources
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true   "Resource ID"
// @Param        body  body      resourceRequest  true   "Resource"
// @Param        file  formData  file             false  "Replacement attachment"
// @Success      200   {object}  domain.Resource
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/resources/{id} [put]
func (h *ResourceHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	in, closeFile, err := bindResource(c)
	defer closeFile()
	if err != nil {
		return err
	}

	r, err := h.resourceService.Update(c.Request().Context(), id, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Delete handles DELETE /api/resources/:id. Only the author or an admin may delete.
//
// @Summary      Delete a resource
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Resource ID"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/resources/{id} [delete]
func (h *ResourceHandler) Delete(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.resourceService.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Resource deleted successfully"})
}

// Download handles GET /api/resources/:id/download and streams the stored file.
//
// @Summary      Download a resource attachment
// @Tags         resources
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        id   path  string  true  "Resource ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  errorResponse
// @Router       /api/resources/{id}/download [get]
func (h *ResourceHandler) Download(c echo.Context) error {
	d, err := h.resourceService.Download(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	defer d.Body.Close()

	contentType := mime.TypeByExtension(filepath.Ext(d.Name))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": d.Name}))
	return c.Stream(http.StatusOK, contentType, d.Body)
}

// Bookmark handles POST /api/resources/:id/bookmark and toggles the caller's bookmark.
//
// @Summary      Toggle bookmark
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Resource ID"
// @Success      200  {object}  bookmarkResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/resources/{id}/bookmark [post]
func (h *ResourceHandler) Bookmark(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	on, err := h.resourceService.ToggleBookmark(c.Request().Context(), id.SubjectID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookmarkResponse{Bookmarked: on})
}
