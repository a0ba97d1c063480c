package bootstrap

import (
	"testing"
	"time"

	"github.com/carcarepro/carcare-ui/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServicesWithoutGoogle(t *testing.T) {
	cfg := &config.AppConfig{}
	cfg.Backend.BaseURL = "http://localhost:8000"
	cfg.Backend.Timeout = 5 * time.Second
	cfg.Auth.SessionTTL = 30 * time.Minute

	container, err := NewServices(&ServiceDeps{Config: cfg})
	require.NoError(t, err)

	assert.NotNil(t, container.Auth)
	assert.NotNil(t, container.Admin)
	assert.NotNil(t, container.Maintenance)
	assert.False(t, container.Auth.GoogleEnabled())
}

func TestNewServicesRequiresBackendBaseURL(t *testing.T) {
	cfg := &config.AppConfig{}

	_, err := NewServices(&ServiceDeps{Config: cfg})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend client")
}

func TestBuildIdentityProviderDisabled(t *testing.T) {
	cfg := &config.AppConfig{}

	provider, err := buildIdentityProvider(cfg)
	require.NoError(t, err)
	assert.Nil(t, provider)
}
