package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/alumnihub/alumni-network/internal/api/metrics"
	"github.com/alumnihub/alumni-network/internal/core/domain"
	"github.com/alumnihub/alumni-network/internal/core/ports"
)

const avatarPrefix = "avatars"

var validate = validator.New()

// AuthService implements registration and login over an injected credential store.
type AuthService struct {
	users  ports.CredentialStore
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	files  ports.FileStore
	log    zerolog.Logger

	// dummyDigest is compared against when the email is unknown so both
	// failure paths cost one bcrypt verification.
	dummyDigest string
}

// NewAuthService wires the auth core. files may be nil when uploads are disabled.
func NewAuthService(
	users ports.CredentialStore,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	files ports.FileStore,
	log zerolog.Logger,
) *AuthService {
	dummy, err := hasher.Hash("alumni-network-dummy-password")
	if err != nil {
		log.Warn().Err(err).Msg("could not prepare dummy digest")
	}
	return &AuthService{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		files:       files,
		log:         log,
		dummyDigest: dummy,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	user, err := s.newUser(in)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid_input").Inc()
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, user.Email); err == nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "conflict").Inc()
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}
	user.PasswordHash = digest

	var avatarKey string
	if in.Avatar != nil && s.files != nil {
		avatarKey, err = s.files.Save(ctx, avatarPrefix, *in.Avatar)
		if err != nil {
			metrics.UploadsTotal.WithLabelValues(avatarPrefix, "error").Inc()
			metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
			return nil, fmt.Errorf("register: store avatar: %w", err)
		}
		metrics.UploadsTotal.WithLabelValues(avatarPrefix, "success").Inc()
		user.Profile.ProfileImage = s.files.URL(avatarKey)
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if avatarKey != "" {
			if delErr := s.files.Delete(ctx, avatarKey); delErr != nil {
				s.log.Warn().Err(delErr).Str("key", avatarKey).Msg("failed to remove orphaned avatar")
			}
		}
		if errors.Is(err, domain.ErrUserExists) {
			metrics.AuthAttemptsTotal.WithLabelValues("register", "conflict").Inc()
			return nil, err
		}
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, fmt.Errorf("register: create user: %w", err)
	}

	token, err := s.tokens.Issue(created.ID, created.Role)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")

	return &ports.AuthResult{User: created, Token: token}, nil
}

// newUser validates the form and builds the record to persist, without the digest.
func (s *AuthService) newUser(in ports.RegisterInput) (*domain.User, error) {
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}

	role := strings.ToLower(strings.TrimSpace(in.Role))
	if role == "" {
		role = domain.DefaultRole
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: role must be one of alumni, student, admin", domain.ErrValidation)
	}

	now := time.Now().UTC()
	user := &domain.User{Role: role, CreatedAt: now, UpdatedAt: now}

	if role == domain.RoleAdmin {
		name := strings.TrimSpace(in.CollegeName)
		code := strings.TrimSpace(in.CollegeCode)
		if name == "" || in.CollegeEmail == "" || code == "" {
			return nil, fmt.Errorf("%w: college_name, college_email and college_code are required for admin", domain.ErrValidation)
		}
		email := domain.NormalizeEmail(in.CollegeEmail)
		if validate.Var(email, "email") != nil {
			return nil, fmt.Errorf("%w: college_email must be a valid email", domain.ErrValidation)
		}
		user.Name = name
		user.Email = email
		user.Profile.CollegeName = name
		user.Profile.CollegeCode = code
		return user, nil
	}

	name := strings.TrimSpace(in.Name)
	if name == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}
	email := domain.NormalizeEmail(in.Email)
	if validate.Var(email, "email") != nil {
		return nil, fmt.Errorf("%w: email must be a valid email", domain.ErrValidation)
	}
	user.Name = name
	user.Email = email
	return user, nil
}

// Login never tells the caller which of email or password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_, _ = s.hasher.Verify(password, s.dummyDigest)
			metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, fmt.Errorf("login: lookup email: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("stored password digest is unusable")
	}
	if !ok {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return &ports.AuthResult{User: user, Token: token}, nil
}

// CurrentRole returns the role stored for subjectID, ignoring whatever a token claims.
func (s *AuthService) CurrentRole(ctx context.Context, subjectID string) (string, error) {
	user, err := s.users.FindByID(ctx, subjectID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}
