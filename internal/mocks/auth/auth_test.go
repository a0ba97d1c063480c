package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/carcarepro/carcare-ui/internal/domain/auth"
	"github.com/carcarepro/carcare-ui/internal/ports"
)

func TestMockIdentityProvider_Begin_Defaults(t *testing.T) {
	provider := NewMockIdentityProvider()
	ctx := context.Background()

	input := ports.BeginInput{RedirectURL: "http://localhost:8080/auth/google/callback"}
	authURL, state, nonce, err := provider.Begin(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", authURL)
	assert.Equal(t, "state-1", state)
	assert.Equal(t, "nonce-1", nonce)

	// Second call should increment counters
	_, state2, nonce2, err2 := provider.Begin(ctx, input)
	require.NoError(t, err2)
	assert.Equal(t, "state-2", state2)
	assert.Equal(t, "nonce-2", nonce2)
}

func TestMockIdentityProvider_Exchange_Defaults(t *testing.T) {
	provider := NewMockIdentityProvider()

	identity, err := provider.Exchange(context.Background(), ports.ExchangeInput{
		Code: "code", State: "state", Nonce: "nonce",
	})

	require.NoError(t, err)
	assert.Equal(t, "mock-sub-1", identity.Subject)
	assert.Equal(t, "mock.user@example.com", identity.Email)
	assert.True(t, identity.ExpiresAt.After(time.Now()))
}

func TestMemorySessionStore_Roundtrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	sess := domainauth.Session{
		ID:        "sess-1",
		Token:     "tok",
		Email:     "mock.user@example.com",
		Role:      domainauth.RoleUser,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, sess))
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	require.NoError(t, store.Delete(ctx, "sess-1"))
	_, err = store.Get(ctx, "sess-1")
	assert.Equal(t, ErrNotFound, err)
}

func TestMemorySessionStore_InjectedErrors(t *testing.T) {
	store := NewMemorySessionStore()
	store.SaveErr = assert.AnError
	err := store.Save(context.Background(), domainauth.Session{ID: "x"})
	assert.Equal(t, assert.AnError, err)

	store.SaveErr = nil
	store.GetErr = assert.AnError
	_, err = store.Get(context.Background(), "x")
	assert.Equal(t, assert.AnError, err)
}
