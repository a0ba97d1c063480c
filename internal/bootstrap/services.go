package bootstrap

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/carcarepro/carcare-ui/config"
	"github.com/carcarepro/carcare-ui/internal/adapters/oidc"
	redisadapter "github.com/carcarepro/carcare-ui/internal/adapters/redis"
	"github.com/carcarepro/carcare-ui/internal/api"
	"github.com/carcarepro/carcare-ui/internal/ports"
	"github.com/carcarepro/carcare-ui/internal/service"
	"github.com/redis/go-redis/v9"
)

// ServiceContainer holds the application services the HTTP layer consumes.
type ServiceContainer struct {
	Auth        *service.AuthService
	Admin       *service.AdminService
	Maintenance *service.MaintenanceService
}

// ServiceDeps contains external dependencies for service construction.
type ServiceDeps struct {
	Config *config.AppConfig
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

// NewServices builds the service layer: backend API client, Redis session
// store, optional Google identity provider, and the services on top.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	backend, err := api.NewClient(api.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build backend client: %w", err)
	}

	sessions := redisadapter.NewSessionStore(deps.Redis)

	provider, err := buildIdentityProvider(cfg)
	if err != nil {
		return ServiceContainer{}, err
	}

	auth := service.NewAuthService(service.AuthServiceOptions{
		Backend:    backend,
		Sessions:   sessions,
		Provider:   provider,
		SessionTTL: cfg.Auth.SessionTTL,
		Logger:     logger,
	})

	admin := service.NewAdminService(service.AdminServiceOptions{
		Directory:  backend,
		EmailAdmin: backend,
	})

	maintenance := service.NewMaintenanceService(service.MaintenanceServiceOptions{
		Maintenance: backend,
		Auth:        backend,
		Logger:      logger,
	})

	return ServiceContainer{
		Auth:        auth,
		Admin:       admin,
		Maintenance: maintenance,
	}, nil
}

// buildIdentityProvider constructs the Google OIDC provider when sign-in
// is configured. A nil provider disables the Google button.
//
//nolint:ireturn // the service layer depends on the port, not the adapter.
func buildIdentityProvider(cfg *config.AppConfig) (ports.IdentityProvider, error) {
	google := cfg.Auth.Google
	if !google.Enabled() {
		return nil, nil
	}

	redirectURL := google.RedirectURL
	if redirectURL == "" {
		redirectURL = strings.TrimRight(cfg.HTTP.BaseURL, "/") + "/auth/google/callback"
	}

	provider, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     google.ClientID,
		ClientSecret: google.ClientSecret,
		RedirectURL:  redirectURL,
		Scope:        google.Scope,
		DiscoveryURL: google.DiscoveryURL,
		NameExpr:     google.NameExpr,
		EmailExpr:    google.EmailExpr,
	})
	if err != nil {
		return nil, fmt.Errorf("build google identity provider: %w", err)
	}
	return provider, nil
}
