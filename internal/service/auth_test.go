package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carcarepro/carcare-ui/internal/core"
	domainauth "github.com/carcarepro/carcare-ui/internal/domain/auth"
	authmocks "github.com/carcarepro/carcare-ui/internal/mocks"
	mocks "github.com/carcarepro/carcare-ui/internal/mocks/auth"
	"github.com/carcarepro/carcare-ui/internal/ports"
)

func adminProfile() *domainauth.Profile {
	return &domainauth.Profile{
		Name:          "Admin User",
		Email:         "admin@carcare.com",
		Role:          domainauth.RoleAdmin,
		EmailVerified: true,
	}
}

func newTestAuthService(t *testing.T) (*AuthService, *authmocks.MockBackendAPI, *mocks.MemorySessionStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	backend := authmocks.NewMockBackendAPI(ctrl)
	sessions := mocks.NewMemorySessionStore()
	svc := NewAuthService(AuthServiceOptions{
		Backend:    backend,
		Sessions:   sessions,
		Provider:   mocks.NewMockIdentityProvider(),
		SessionTTL: 30 * time.Minute,
	})
	return svc, backend, sessions
}

func TestAuthService_PasswordLogin_Success(t *testing.T) {
	svc, backend, sessions := newTestAuthService(t)
	ctx := context.Background()

	backend.EXPECT().Login(gomock.Any(), "admin@carcare.com", "admin123").Return("tok-1", nil)
	backend.EXPECT().Profile(gomock.Any(), "tok-1").Return(adminProfile(), nil)

	session, err := svc.PasswordLogin(ctx, "admin@carcare.com", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "tok-1", session.Token)
	assert.Equal(t, "admin@carcare.com", session.Email)
	assert.True(t, session.IsAdmin())
	assert.Equal(t, 1, sessions.Len())

	stored, err := sessions.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, stored.HasProfile())
}

func TestAuthService_PasswordLogin_BadCredentials(t *testing.T) {
	svc, backend, sessions := newTestAuthService(t)

	backend.EXPECT().
		Login(gomock.Any(), "admin@carcare.com", "wrong").
		Return("", errors.New("backend returned 401: Incorrect email or password"))

	_, err := svc.PasswordLogin(context.Background(), "admin@carcare.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, 0, sessions.Len())
}

func TestAuthService_PasswordLogin_ProfileDeferred(t *testing.T) {
	svc, backend, sessions := newTestAuthService(t)
	ctx := context.Background()

	backend.EXPECT().Login(gomock.Any(), "admin@carcare.com", "admin123").Return("tok-1", nil)
	backend.EXPECT().Profile(gomock.Any(), "tok-1").Return(nil, errors.New("transient"))

	session, err := svc.PasswordLogin(ctx, "admin@carcare.com", "admin123")
	require.NoError(t, err)
	assert.False(t, session.HasProfile())
	assert.Equal(t, 1, sessions.Len())
}

func TestAuthService_BeginGoogleLogin(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	result, err := svc.BeginGoogleLogin(context.Background(), "http://localhost:8080/auth/google/callback")
	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", result.AuthURL)
	assert.NotEmpty(t, result.State)
	assert.NotEmpty(t, result.Nonce)
}

func TestAuthService_BeginGoogleLogin_Errors(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	_, err := svc.BeginGoogleLogin(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redirect URL is required")

	ctrl := gomock.NewController(t)
	noGoogle := NewAuthService(AuthServiceOptions{
		Backend:  authmocks.NewMockBackendAPI(ctrl),
		Sessions: mocks.NewMemorySessionStore(),
	})
	assert.False(t, noGoogle.GoogleEnabled())
	_, err = noGoogle.BeginGoogleLogin(context.Background(), "http://localhost/cb")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestAuthService_CompleteGoogleLogin_Success(t *testing.T) {
	svc, backend, sessions := newTestAuthService(t)
	ctx := context.Background()

	backend.EXPECT().
		LoginWithGoogle(gomock.Any(), core.GoogleLoginParams{
			Email:    "mock.user@example.com",
			Name:     "Mock User",
			GoogleID: "mock-sub-1",
		}).
		Return("tok-google", nil)
	backend.EXPECT().Profile(gomock.Any(), "tok-google").Return(&domainauth.Profile{
		Name:  "Mock User",
		Email: "mock.user@example.com",
		Role:  domainauth.RoleUser,
	}, nil)

	session, err := svc.CompleteGoogleLogin(ctx, CompleteLoginInput{
		Code: "code", State: "state-1", Nonce: "nonce-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-google", session.Token)
	assert.False(t, session.IsAdmin())
	assert.Equal(t, 1, sessions.Len())
}

func TestAuthService_CompleteGoogleLogin_ValidationErrors(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		input  CompleteLoginInput
		errMsg string
	}{
		{name: "missing code", input: CompleteLoginInput{State: "s", Nonce: "n"}, errMsg: "authorization code is required"},
		{name: "missing state", input: CompleteLoginInput{Code: "c", Nonce: "n"}, errMsg: "state parameter is required"},
		{name: "missing nonce", input: CompleteLoginInput{Code: "c", State: "s"}, errMsg: "nonce parameter is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CompleteGoogleLogin(ctx, tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestAuthService_GetSession_CachedProfile(t *testing.T) {
	svc, _, sessions := newTestAuthService(t)
	ctx := context.Background()

	stored := domainauth.Session{
		ID:        "sess-1",
		Token:     "tok-1",
		Name:      "Admin User",
		Email:     "admin@carcare.com",
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, sessions.Save(ctx, stored))

	// No backend expectations: a session with a cached profile must not
	// trigger any backend call.
	session, err := svc.GetSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, stored.Email, session.Email)
}

func TestAuthService_GetSession_LazyProfileFetch(t *testing.T) {
	svc, backend, sessions := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, sessions.Save(ctx, domainauth.Session{
		ID:        "sess-1",
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	backend.EXPECT().Profile(gomock.Any(), "tok-1").Return(adminProfile(), nil)

	session, err := svc.GetSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, session.HasProfile())
	assert.True(t, session.IsAdmin())

	// Profile is now cached; a second lookup makes no backend call.
	cached, err := svc.GetSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "admin@carcare.com", cached.Email)
}

func TestAuthService_GetSession_ProfileFetchFailureInvalidates(t *testing.T) {
	svc, backend, sessions := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, sessions.Save(ctx, domainauth.Session{
		ID:        "sess-dead",
		Token:     "tok-dead",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	backend.EXPECT().Profile(gomock.Any(), "tok-dead").Return(nil, errors.New("backend returned 401"))

	_, err := svc.GetSession(ctx, "sess-dead")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 0, sessions.Len())
}

func TestAuthService_GetSession_Expired(t *testing.T) {
	svc, _, sessions := newTestAuthService(t)
	ctx := context.Background()

	// The memory double accepts expired sessions, so this exercises the
	// service's own expiry check.
	require.NoError(t, sessions.Save(ctx, domainauth.Session{
		ID:        "sess-old",
		Token:     "tok",
		Email:     "admin@carcare.com",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := svc.GetSession(ctx, "sess-old")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestAuthService_GetSession_MissingID(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.GetSession(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session ID is required")
}

func TestAuthService_GetSession_StoreError(t *testing.T) {
	svc, _, sessions := newTestAuthService(t)
	sessions.GetErr = errors.New("redis down")

	_, err := svc.GetSession(context.Background(), "sess-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, sessions := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, sessions.Save(ctx, domainauth.Session{
		ID:        "sess-1",
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, svc.Logout(ctx, "sess-1"))
	assert.Equal(t, 0, sessions.Len())

	// Logging out a missing or empty session is not an error.
	assert.NoError(t, svc.Logout(ctx, "sess-1"))
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestAuthService_SessionTTLDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewAuthService(AuthServiceOptions{
		Backend:  authmocks.NewMockBackendAPI(ctrl),
		Sessions: mocks.NewMemorySessionStore(),
	})
	assert.Equal(t, 30*time.Minute, svc.sessionTTL)
}

// Guard against interface drift between the doubles and the ports.
var _ ports.SessionStore = (*mocks.MemorySessionStore)(nil)
