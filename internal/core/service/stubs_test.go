package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	seq     int
	findErr error
	// createErr, when set, is returned by Create after the pre-check passed.
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%d", r.seq)
	r.byID[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Company != nil {
		u.Profile.Company = *upd.Company
	}
	if upd.Title != nil {
		u.Profile.Title = *upd.Title
	}
	if upd.ProfileImage != nil {
		u.Profile.ProfileImage = *upd.ProfileImage
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	lastListFilter = f
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) CountByCompany(_ context.Context, company, excludeID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, u := range r.byID {
		if id != excludeID && company != "" && u.Profile.Company == company {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) Suggestions(_ context.Context, me *domain.User, limit int) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for id, u := range r.byID {
		if id == me.ID {
			continue
		}
		sameCompany := me.Profile.Company != "" && u.Profile.Company == me.Profile.Company
		sameLocation := me.Profile.Location != "" && u.Profile.Location == me.Profile.Location
		if sameCompany || sameLocation {
			out = append(out, cloneUser(u))
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

var lastListFilter ports.ListUsersFilter

// ---------------------------------------------------------------------------
// Files
// ---------------------------------------------------------------------------

type stubFileStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	saveErr error
	deleted []string
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{files: make(map[string][]byte)}
}

func (s *stubFileStore) Save(_ context.Context, prefix string, up ports.Upload) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, err := io.ReadAll(up.Body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%s/%d-%s", prefix, len(s.files), up.Filename)
	s.files[key] = data
	return key, nil
}

func (s *stubFileStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[key]
	if !ok {
		return nil, domain.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *stubFileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *stubFileStore) URL(key string) string { return "/uploads/" + key }

func textUpload(name, body string) *ports.Upload {
	return &ports.Upload{Filename: name, ContentType: "text/plain", Size: int64(len(body)), Body: strings.NewReader(body)}
}

// ---------------------------------------------------------------------------
// Activity publisher
// ---------------------------------------------------------------------------

type stubPublisher struct {
	mu      sync.Mutex
	entries []ports.ActivityInput
}

func (p *stubPublisher) Enqueue(in ports.ActivityInput) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, in)
}

func (p *stubPublisher) types() []domain.ActivityType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ActivityType, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, e.Type)
	}
	return out
}
