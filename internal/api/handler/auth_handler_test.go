package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Name != "Alice" || in.Email != "alice@example.com" || in.Role != "student" || in.Avatar != nil {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{
				User:  &domain.User{ID: "user-1", Name: in.Name, Email: in.Email, Role: in.Role, PasswordHash: "digest"},
				Token: "signed.jwt.token",
			}, nil
		},
	}
	h := NewAuthHandler(stub, nil)

	c, rec := newContext(http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"hunter22","role":"student"}`, nil)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed.jwt.token" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["email"] != "alice@example.com" || user["role"] != "student" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["PasswordHash"]; leaked {
		t.Fatalf("password digest leaked: %+v", user)
	}
}

func TestAuthHandler_Register_MultipartAvatar(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Email != "bob@example.com" || in.CollegeCode != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Avatar == nil || in.Avatar.Filename != "me.png" {
				t.Fatalf("expected avatar upload, got %+v", in.Avatar)
			}
			b, _ := io.ReadAll(in.Avatar.Body)
			if string(b) != "png-bytes" {
				t.Fatalf("unexpected avatar body %q", b)
			}
			return &ports.AuthResult{User: &domain.User{ID: "user-2", Email: in.Email}, Token: "t"}, nil
		},
	}
	h := NewAuthHandler(stub, nil)

	c, rec := newMultipartContext(t, http.MethodPost, "/api/auth/register",
		map[string]string{"name": "Bob", "email": "bob@example.com", "password": "hunter22"},
		"profileImage", "me.png", "png-bytes", nil)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub, nil)

	c, _ := newContext(http.MethodPost, "/api/auth/register", `{"email":"bob@example.com","password":"x"}`, nil)

	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, nil)
	c, _ := newContext(http.MethodPost, "/api/auth/register", `{"email":`, nil)

	if code := httpStatus(t, h.Register(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "alice@example.com" || password != "hunter22" {
				t.Fatalf("unexpected credentials %q %q", email, password)
			}
			return &ports.AuthResult{User: &domain.User{ID: "user-1", Email: email}, Token: "signed"}, nil
		},
	}
	h := NewAuthHandler(stub, nil)

	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"hunter22"}`, nil)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "signed" || resp.User == nil || resp.User.ID != "user-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_MissingPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, nil)
	c, _ := newContext(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com"}`, nil)

	err := h.Login(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, nil)
	c, _ := newContext(http.MethodPost, "/api/auth/login", `{"email":"a@example.com","password":"wrong"}`, nil)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Me_RequiresIdentity(t *testing.T) {
	h := NewAuthHandler(nil, &stubProfileService{})
	c, _ := newContext(http.MethodGet, "/api/auth/me", "", nil)

	if code := httpStatus(t, h.Me(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	profiles := &stubProfileService{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			if id != alice.SubjectID {
				t.Fatalf("unexpected id %q", id)
			}
			return &domain.User{ID: id, Name: "Alice"}, nil
		},
	}
	h := NewAuthHandler(nil, profiles)
	c, rec := newContext(http.MethodGet, "/api/auth/me", "", &alice)

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User == nil || resp.User.Name != "Alice" {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
}

func TestAuthHandler_UpdateProfile_PartialJSON(t *testing.T) {
	profiles := &stubProfileService{
		updateFn: func(ctx context.Context, id string, in ports.UpdateProfileInput) (*domain.User, error) {
			u := in.Update
			if u.Company == nil || *u.Company != "Acme" {
				t.Fatalf("expected company to be set, got %+v", u)
			}
			if u.GraduationYear == nil || *u.GraduationYear != 2015 {
				t.Fatalf("expected graduation year, got %+v", u)
			}
			if u.Name != nil || u.Email != nil || u.Bio != nil {
				t.Fatalf("absent fields must stay nil: %+v", u)
			}
			if in.Avatar != nil {
				t.Fatalf("unexpected avatar")
			}
			return &domain.User{ID: id, Profile: domain.Profile{Company: "Acme"}}, nil
		},
	}
	h := NewAuthHandler(nil, profiles)
	c, rec := newContext(http.MethodPut, "/api/auth/profile", `{"company":"Acme","graduationYear":2015}`, &alice)

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_UpdateProfile_Multipart(t *testing.T) {
	profiles := &stubProfileService{
		updateFn: func(ctx context.Context, id string, in ports.UpdateProfileInput) (*domain.User, error) {
			u := in.Update
			if u.Title == nil || *u.Title != "CTO" || u.GraduationYear == nil || *u.GraduationYear != 2010 {
				t.Fatalf("unexpected update: %+v", u)
			}
			if u.Company != nil {
				t.Fatalf("company was not sent and must stay nil")
			}
			if in.Avatar == nil || in.Avatar.Filename != "new.jpg" {
				t.Fatalf("expected avatar, got %+v", in.Avatar)
			}
			return &domain.User{ID: id}, nil
		},
	}
	h := NewAuthHandler(nil, profiles)
	c, rec := newMultipartContext(t, http.MethodPut, "/api/auth/profile",
		map[string]string{"title": "CTO", "graduationYear": "2010"},
		"profileImage", "new.jpg", "jpg", &alice)

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_UpdateProfile_BadYear(t *testing.T) {
	h := NewAuthHandler(nil, &stubProfileService{})
	c, _ := newMultipartContext(t, http.MethodPut, "/api/auth/profile",
		map[string]string{"graduationYear": "soon"}, "", "", "", &alice)

	if err := h.UpdateProfile(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
