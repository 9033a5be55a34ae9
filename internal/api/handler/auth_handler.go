package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

type AuthHandler struct {
	authService    ports.AuthService
	profileService ports.ProfileService
}

func NewAuthHandler(authService ports.AuthService, profileService ports.ProfileService) *AuthHandler {
	return &AuthHandler{authService: authService, profileService: profileService}
}

type registerRequest struct {
	Name         string `json:"name"          form:"name"`
	Email        string `json:"email"         form:"email"`
	Password     string `json:"password"      form:"password"`
	Role         string `json:"role"          form:"role"`
	CollegeName  string `json:"college_name"  form:"college_name"`
	CollegeEmail string `json:"college_email" form:"college_email"`
	CollegeCode  string `json:"college_code"  form:"college_code"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// updateProfileRequest is the JSON form of a partial profile change.
type updateProfileRequest struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Title          *string `json:"title"`
	Company        *string `json:"company"`
	Location       *string `json:"location"`
	GraduationYear *int    `json:"graduationYear"`
	Bio            *string `json:"bio"`
	LinkedIn       *string `json:"linkedin"`
	Website        *string `json:"website"`
}

// Register creates a new account and returns a token for it.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json,mpfd
// @Produce      json
// @Param        body          body      registerRequest  true   "Registration details"
// @Param        profileImage  formData  file             false  "Avatar"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	avatar, closeAvatar, err := formUpload(c, "profileImage")
	if err != nil {
		return err
	}
	defer closeAvatar()

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Role:         req.Role,
		CollegeName:  req.CollegeName,
		CollegeEmail: req.CollegeEmail,
		CollegeCode:  req.CollegeCode,
		Avatar:       avatar,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		Message: "User registered successfully",
		User:    res.User,
		Token:   res.Token,
	})
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		User:    res.User,
		Token:   res.Token,
	})
}

// Me returns the profile of the authenticated caller.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.profileService.Get(c.Request().Context(), id.SubjectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// UpdateProfile applies a partial change to the caller's profile.
// Fields left out of the request keep their stored value.
//
// @Summary      Update current user profile
// @Tags         auth
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body          body      updateProfileRequest  true   "Fields to change"
// @Param        profileImage  formData  file                  false  "New avatar"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var update domain.ProfileUpdate
	if isMultipart(c) {
		update, err = profileUpdateFromForm(c)
	} else {
		var req updateProfileRequest
		if bindErr := c.Bind(&req); bindErr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		update = req.toUpdate()
	}
	if err != nil {
		return err
	}

	avatar, closeAvatar, err := formUpload(c, "profileImage")
	if err != nil {
		return err
	}
	defer closeAvatar()

	user, err := h.profileService.Update(c.Request().Context(), id.SubjectID, ports.UpdateProfileInput{
		Update: update,
		Avatar: avatar,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

func (r updateProfileRequest) toUpdate() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Name:           r.Name,
		Email:          r.Email,
		Title:          r.Title,
		Company:        r.Company,
		Location:       r.Location,
		GraduationYear: r.GraduationYear,
		Bio:            r.Bio,
		LinkedIn:       r.LinkedIn,
		Website:        r.Website,
	}
}

// profileUpdateFromForm reads a multipart profile form. Only fields present in
// the form end up set in the update.
func profileUpdateFromForm(c echo.Context) (domain.ProfileUpdate, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return domain.ProfileUpdate{}, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
	}
	field := func(name string) *string {
		vals, ok := form.Value[name]
		if !ok || len(vals) == 0 {
			return nil
		}
		v := vals[0]
		return &v
	}

	update := domain.ProfileUpdate{
		Name:     field("name"),
		Email:    field("email"),
		Title:    field("title"),
		Company:  field("company"),
		Location: field("location"),
		Bio:      field("bio"),
		LinkedIn: field("linkedin"),
		Website:  field("website"),
	}
	if raw := field("graduationYear"); raw != nil && strings.TrimSpace(*raw) != "" {
		year, err := strconv.Atoi(strings.TrimSpace(*raw))
		if err != nil {
			return domain.ProfileUpdate{}, fmt.Errorf("%w: graduationYear must be a number", domain.ErrValidation)
		}
		update.GraduationYear = &year
	}
	return update, nil
}
