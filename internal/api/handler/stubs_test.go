package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/alumnihub/alumni-network/internal/api/middleware"
	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

type stubProfileService struct {
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateProfileInput) (*domain.User, error)
	listFn   func(ctx context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error)
	resumeFn func(ctx context.Context, userID string, up ports.Upload) (string, error)
}

func (s *stubProfileService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubProfileService) Update(ctx context.Context, id string, in ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubProfileService) List(ctx context.Context, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubProfileService) StoreResume(ctx context.Context, userID string, up ports.Upload) (string, error) {
	return s.resumeFn(ctx, userID, up)
}

type stubEventService struct {
	createFn   func(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error)
	listFn     func(ctx context.Context) ([]*domain.Event, error)
	registerFn func(ctx context.Context, eventID, userID string) (*domain.Event, error)
}

func (s *stubEventService) Create(ctx context.Context, in ports.CreateEventInput) (*domain.Event, error) {
	return s.createFn(ctx, in)
}

func (s *stubEventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.listFn(ctx)
}

func (s *stubEventService) Register(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	return s.registerFn(ctx, eventID, userID)
}

type stubMentorshipService struct {
	createFn  func(ctx context.Context, in ports.CreateMentorshipInput) (*domain.Mentorship, error)
	listFn    func(ctx context.Context) ([]*domain.Mentorship, error)
	requestFn func(ctx context.Context, in ports.RequestMentorshipInput) (*domain.MentorshipRequest, error)
	pendingFn func(ctx context.Context, mentorID string) ([]*domain.MentorshipRequest, error)
	respondFn func(ctx context.Context, requestID, mentorID, response string) (*domain.MentorshipRequest, error)
}

func (s *stubMentorshipService) Create(ctx context.Context, in ports.CreateMentorshipInput) (*domain.Mentorship, error) {
	return s.createFn(ctx, in)
}

func (s *stubMentorshipService) List(ctx context.Context) ([]*domain.Mentorship, error) {
	return s.listFn(ctx)
}

func (s *stubMentorshipService) Request(ctx context.Context, in ports.RequestMentorshipInput) (*domain.MentorshipRequest, error) {
	return s.requestFn(ctx, in)
}

func (s *stubMentorshipService) PendingRequests(ctx context.Context, mentorID string) ([]*domain.MentorshipRequest, error) {
	return s.pendingFn(ctx, mentorID)
}

func (s *stubMentorshipService) Respond(ctx context.Context, requestID, mentorID, response string) (*domain.MentorshipRequest, error) {
	return s.respondFn(ctx, requestID, mentorID, response)
}

type stubResourceService struct {
	listFn     func(ctx context.Context) ([]*domain.Resource, error)
	getFn      func(ctx context.Context, id string) (*domain.Resource, error)
	createFn   func(ctx context.Context, author domain.Identity, in ports.ResourceInput) (*domain.Resource, error)
	updateFn   func(ctx context.Context, caller domain.Identity, id string, in ports.ResourceInput) (*domain.Resource, error)
	deleteFn   func(ctx context.Context, caller domain.Identity, id string) error
	downloadFn func(ctx context.Context, id string) (*ports.Download, error)
	bookmarkFn func(ctx context.Context, userID, resourceID string) (bool, error)
}

func (s *stubResourceService) List(ctx context.Context) ([]*domain.Resource, error) {
	return s.listFn(ctx)
}

func (s *stubResourceService) Get(ctx context.Context, id string) (*domain.Resource, error) {
	return s.getFn(ctx, id)
}

func (s *stubResourceService) Create(ctx context.Context, author domain.Identity, in ports.ResourceInput) (*domain.Resource, error) {
	return s.createFn(ctx, author, in)
}

func (s *stubResourceService) Update(ctx context.Context, caller domain.Identity, id string, in ports.ResourceInput) (*domain.Resource, error) {
	return s.updateFn(ctx, caller, id, in)
}

func (s *stubResourceService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	return s.deleteFn(ctx, caller, id)
}

func (s *stubResourceService) Download(ctx context.Context, id string) (*ports.Download, error) {
	return s.downloadFn(ctx, id)
}

func (s *stubResourceService) ToggleBookmark(ctx context.Context, userID, resourceID string) (bool, error) {
	return s.bookmarkFn(ctx, userID, resourceID)
}

type stubDashboardService struct {
	statsFn       func(ctx context.Context, userID string) (*ports.DashboardStats, error)
	activitiesFn  func(ctx context.Context, userID string) ([]*domain.Activity, error)
	suggestionsFn func(ctx context.Context, userID string) ([]*domain.User, error)
	upcomingFn    func(ctx context.Context, userID string) ([]*ports.DashboardEvent, error)
	recentFn      func(ctx context.Context) ([]*domain.User, error)
}

func (s *stubDashboardService) Stats(ctx context.Context, userID string) (*ports.DashboardStats, error) {
	return s.statsFn(ctx, userID)
}

func (s *stubDashboardService) Activities(ctx context.Context, userID string) ([]*domain.Activity, error) {
	return s.activitiesFn(ctx, userID)
}

func (s *stubDashboardService) Suggestions(ctx context.Context, userID string) ([]*domain.User, error) {
	return s.suggestionsFn(ctx, userID)
}

func (s *stubDashboardService) UpcomingEvents(ctx context.Context, userID string) ([]*ports.DashboardEvent, error) {
	return s.upcomingFn(ctx, userID)
}

func (s *stubDashboardService) RecentAlumni(ctx context.Context) ([]*domain.User, error) {
	return s.recentFn(ctx)
}

var alice = domain.Identity{SubjectID: "user-1", Role: domain.RoleAlumni}

// newContext builds an echo context for a JSON request, optionally authenticated.
func newContext(method, target, body string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		middleware.SetIdentity(c, *id)
	}
	return c, rec
}

// newMultipartContext builds an authenticated context carrying form fields and
// at most one file.
func newMultipartContext(t *testing.T, method, target string, fields map[string]string, fileField, fileName, fileBody string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := io.WriteString(fw, fileBody); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		middleware.SetIdentity(c, *id)
	}
	return c, rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}
