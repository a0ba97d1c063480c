package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carcarepro/carcare-ui/internal/core"
	domainauth "github.com/carcarepro/carcare-ui/internal/domain/auth"
	"github.com/carcarepro/carcare-ui/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Backend  core.AuthAPI
	Sessions ports.SessionStore
	// Provider is optional; when nil, Google sign-in is unavailable.
	Provider ports.IdentityProvider
	// SessionTTL caps session lifetime; defaults to 30 minutes.
	SessionTTL time.Duration
	Logger     *slog.Logger
}

// AuthService orchestrates sign-in flows. It exchanges credentials or a
// Google identity for a backend bearer token, persists the token in a
// server-side session, and keeps the session's cached profile fresh.
type AuthService struct {
	backend    core.AuthAPI
	sessions   ports.SessionStore
	provider   ports.IdentityProvider
	sessionTTL time.Duration
	logger     *slog.Logger
}

// ErrSessionExpired is returned when a session is missing its backing
// record or can no longer be used against the backend. Callers should
// clear the cookie and send the user to the login page.
var ErrSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		backend:    opts.Backend,
		sessions:   opts.Sessions,
		provider:   opts.Provider,
		sessionTTL: ttl,
		logger:     logger,
	}
}

// GoogleEnabled reports whether Google sign-in is configured.
func (s *AuthService) GoogleEnabled() bool { return s.provider != nil }

// PasswordLogin exchanges credentials for a bearer token and creates a
// session. The profile is fetched immediately when possible; on failure
// the session is still created and the profile is filled on first use.
func (s *AuthService) PasswordLogin(ctx context.Context, email, password string) (*domainauth.Session, error) {
	token, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("backend login: %w", err)
	}
	return s.createSession(ctx, token)
}

// BeginLoginResult contains the result of beginning a Google sign-in flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginGoogleLogin initiates the Google sign-in flow and returns the
// provider auth URL with state and nonce.
func (s *AuthService) BeginGoogleLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if s.provider == nil {
		return nil, errors.New("google sign-in is not configured")
	}
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing a Google sign-in flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteGoogleLogin verifies the provider callback, exchanges the
// resulting identity at the backend for a bearer token, and creates a
// session.
func (s *AuthService) CompleteGoogleLogin(ctx context.Context, input CompleteLoginInput) (*domainauth.Session, error) {
	if s.provider == nil {
		return nil, errors.New("google sign-in is not configured")
	}
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	token, err := s.backend.LoginWithGoogle(ctx, core.GoogleLoginParams{
		Email:    identity.Email,
		Name:     identity.Name,
		GoogleID: identity.Subject,
	})
	if err != nil {
		return nil, fmt.Errorf("backend google login: %w", err)
	}

	return s.createSession(ctx, token)
}

// GetSession retrieves a session by ID. A session without cached profile
// fields fetches the profile once and saves it back, so later requests
// never touch the backend. A rejected profile fetch invalidates the
// session.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(ErrSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, ErrSessionExpired
	}

	if !session.HasProfile() {
		profile, profileErr := s.backend.Profile(ctx, session.Token)
		if profileErr != nil {
			// The token never worked or stopped working. Drop the session
			// so the user lands back on the login page.
			if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
				s.logger.Warn("delete session after profile failure", "error", deleteErr)
			}
			return nil, errors.Join(ErrSessionExpired, fmt.Errorf("fetch profile: %w", profileErr))
		}
		applyProfile(&session, profile)
		if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
			s.logger.Warn("cache profile on session", "error", saveErr)
		}
	}

	return &session, nil
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// createSession mints a session for a fresh bearer token, caching the
// profile when the backend will give it up right away.
func (s *AuthService) createSession(ctx context.Context, token string) (*domainauth.Session, error) {
	session := domainauth.Session{
		ID:        uuid.New().String(),
		Token:     token,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}

	if profile, err := s.backend.Profile(ctx, token); err == nil {
		applyProfile(&session, profile)
	} else {
		s.logger.Warn("profile fetch after login failed, deferring", "error", err)
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &session, nil
}

// applyProfile copies backend profile fields onto the session.
func applyProfile(sess *domainauth.Session, profile *domainauth.Profile) {
	sess.Name = profile.Name
	sess.Email = profile.Email
	sess.Role = profile.Role
}
