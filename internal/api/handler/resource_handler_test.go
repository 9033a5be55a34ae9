package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

func TestResourceHandler_Create_Multipart(t *testing.T) {
	svc := &stubResourceService{
		createFn: func(ctx context.Context, author domain.Identity, in ports.ResourceInput) (*domain.Resource, error) {
			if author != alice {
				t.Fatalf("unexpected author %+v", author)
			}
			if in.Title != "Interview guide" || len(in.Tags) != 2 || in.Tags[1] != "career" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.File == nil || in.File.Filename != "guide.pdf" {
				t.Fatalf("expected file, got %+v", in.File)
			}
			return &domain.Resource{ID: "res-1", Title: in.Title}, nil
		},
	}
	h := NewResourceHandler(svc)
	c, rec := newMultipartContext(t, http.MethodPost, "/api/resources",
		map[string]string{
			"title":       "Interview guide",
			"description": "How to prepare",
			"category":    "career",
			"type":        "document",
			"tags":        "interview, career",
		},
		"file", "guide.pdf", "%PDF", &alice)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestResourceHandler_Delete_Forbidden(t *testing.T) {
	svc := &stubResourceService{
		deleteFn: func(ctx context.Context, caller domain.Identity, id string) error {
			if id != "res-1" {
				t.Fatalf("unexpected id %q", id)
			}
			return domain.ErrForbidden
		},
	}
	h := NewResourceHandler(svc)
	c, _ := newContext(http.MethodDelete, "/api/resources/res-1", "", &alice)
	c.SetParamNames("id")
	c.SetParamValues("res-1")

	if err := h.Delete(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestResourceHandler_Update_PassesCaller(t *testing.T) {
	svc := &stubResourceService{
		updateFn: func(ctx context.Context, caller domain.Identity, id string, in ports.ResourceInput) (*domain.Resource, error) {
			if caller != alice || id != "res-1" || in.File != nil {
				t.Fatalf("unexpected args %+v %q %+v", caller, id, in)
			}
			return &domain.Resource{ID: id}, nil
		},
	}
	h := NewResourceHandler(svc)
	c, rec := newContext(http.MethodPut, "/api/resources/res-1",
		`{"title":"t","description":"d","category":"c","type":"link","tags":["a"]}`, &alice)
	c.SetParamNames("id")
	c.SetParamValues("res-1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

type trackingReadCloser struct {
	io.Reader
	closed bool
}

func (r *trackingReadCloser) Close() error {
	r.closed = true
	return nil
}

func TestResourceHandler_Download_StreamsAttachment(t *testing.T) {
	body := &trackingReadCloser{Reader: strings.NewReader("file-content")}
	svc := &stubResourceService{
		downloadFn: func(ctx context.Context, id string) (*ports.Download, error) {
			return &ports.Download{Name: "guide.pdf", Body: body}, nil
		},
	}
	h := NewResourceHandler(svc)
	c, rec := newContext(http.MethodGet, "/api/resources/res-1/download", "", &alice)

	if err := h.Download(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "file-content" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename=guide.pdf` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
	if !body.closed {
		t.Fatalf("expected body to be closed")
	}
}

func TestResourceHandler_Download_NoFile(t *testing.T) {
	svc := &stubResourceService{
		downloadFn: func(ctx context.Context, id string) (*ports.Download, error) {
			return nil, domain.ErrFileNotFound
		},
	}
	h := NewResourceHandler(svc)
	c, _ := newContext(http.MethodGet, "/api/resources/res-1/download", "", &alice)

	if err := h.Download(c); !errors.Is(err, domain.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestResourceHandler_Bookmark(t *testing.T) {
	svc := &stubResourceService{
		bookmarkFn: func(ctx context.Context, userID, resourceID string) (bool, error) {
			if userID != alice.SubjectID || resourceID != "res-1" {
				t.Fatalf("unexpected args %q %q", userID, resourceID)
			}
			return true, nil
		},
	}
	h := NewResourceHandler(svc)
	c, rec := newContext(http.MethodPost, "/api/resources/res-1/bookmark", "", &alice)
	c.SetParamNames("id")
	c.SetParamValues("res-1")

	if err := h.Bookmark(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "{\"bookmarked\":true}\n" {
		t.Fatalf("unexpected body %q", got)
	}
}
