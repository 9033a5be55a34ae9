package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/alumnihub/alumni-network/internal/core/ports"
)

type StudentHandler struct {
	profileService ports.ProfileService
}

func NewStudentHandler(profileService ports.ProfileService) *StudentHandler {
	return &StudentHandler{profileService: profileService}
}

type resumeResponse struct {
	URL string `json:"url"`
}

// UploadResume handles POST /api/student/resume.
//
// @Summary      Upload a resume
// @Tags         student
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        resume  formData  file  true  "Resume document"
// @Success      201  {object}  resumeResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/student/resume [post]
func (h *StudentHandler) UploadResume(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	up, closeUp, err := formUpload(c, "resume")
	if err != nil {
		return err
	}
	defer closeUp()
	if up == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "resume file is required")
	}

	url, err := h.profileService.StoreResume(c.Request().Context(), id.SubjectID, *up)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resumeResponse{URL: url})
}
