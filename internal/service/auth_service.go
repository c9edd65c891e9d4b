package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/UB-ES-2025-A3/ProyectoA3/internal/domain"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/dto"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/session"
	"github.com/UB-ES-2025-A3/ProyectoA3/internal/transport"
)

// Auth validation errors
var (
	ErrMissingCredentials = errors.New("username or email and password are required")
	ErrMissingUsername    = errors.New("username is required")
	ErrMissingEmail       = errors.New("email is required")
	ErrMissingPassword    = errors.New("password is required")
	ErrInvalidEmail       = errors.New("email is not a valid address")
)

// AuthService handles signup, login and logout, persisting the resulting
// session into the store.
type AuthService struct {
	client   *transport.Client
	sessions session.Store
	log      *zap.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(client *transport.Client, sessions session.Store, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{client: client, sessions: sessions, log: log}
}

// Signup registers a new account. When the response carries both a token
// and an id, the session is persisted so the user is logged in
// immediately.
func (s *AuthService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, ErrMissingUsername
	}
	if !isValidEmail(req.Email) {
		return nil, ErrInvalidEmail
	}
	if req.Password == "" {
		return nil, ErrMissingPassword
	}

	var resp dto.AuthResponse
	if err := s.client.Post(ctx, "/auth/signup", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.persistSession(&resp)
	return &resp, nil
}

// Login authenticates an existing account and persists the session.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if strings.TrimSpace(req.UsernameOrEmail) == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	var resp dto.AuthResponse
	if err := s.client.Post(ctx, "/auth/login", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.persistSession(&resp)
	return &resp, nil
}

// Logout clears the persisted session. Logging out while logged out is
// not an error.
func (s *AuthService) Logout() error {
	return s.sessions.Clear()
}

// CurrentSession returns the active session, nil when logged out.
func (s *AuthService) CurrentSession() (*domain.Session, error) {
	return s.sessions.Current()
}

// persistSession stores the session when the response carries both
// halves. A response without them still succeeds; the user just is not
// logged in yet (some backends require a separate login after signup).
func (s *AuthService) persistSession(resp *dto.AuthResponse) {
	if resp.Token == "" || resp.ID.String() == "" {
		s.log.Debug("auth response carried no session, not persisting")
		return
	}
	sess := domain.Session{Token: resp.Token, UserID: resp.ID.String()}
	if err := s.sessions.Save(sess); err != nil {
		s.log.Warn("could not persist session", zap.Error(err))
	}
}

// isValidEmail does a basic structural check.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
