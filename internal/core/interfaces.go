package core

import (
	"context"

	"github.com/carcarepro/carcare-ui/internal/domain/auth"
	"github.com/carcarepro/carcare-ui/internal/domain/model"
)

// This file contains backend API interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the handlers/services and the REST
// client that talks to the CarCare backend. Consumers should depend on these
// interfaces, not the concrete HTTP client.

// GoogleLoginParams carries the verified Google identity exchanged at the
// backend for a bearer token.
type GoogleLoginParams struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	GoogleID string `json:"google_id"`
}

// AuthAPI covers sign-in and account profile operations.
type AuthAPI interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (token string, err error)
	// LoginWithGoogle exchanges a verified Google identity for a bearer token.
	LoginWithGoogle(ctx context.Context, params GoogleLoginParams) (token string, err error)
	// Profile fetches the account behind the bearer token.
	Profile(ctx context.Context, token string) (*auth.Profile, error)
}

// DirectoryAPI covers admin-only user directory operations.
type DirectoryAPI interface {
	// ListUsers returns every registered account.
	ListUsers(ctx context.Context, token string) ([]model.User, error)
	// RegisterUser creates a new account.
	RegisterUser(ctx context.Context, token string, req model.CreateUserRequest) (*model.User, error)
}

// EmailAdminAPI covers admin-only email configuration operations.
type EmailAdminAPI interface {
	// TestEmailConfig asks the backend to verify its SMTP configuration.
	TestEmailConfig(ctx context.Context, token string) (*model.EmailConfigResult, error)
}

// MaintenanceAPI covers vehicle maintenance status operations.
type MaintenanceAPI interface {
	// Status returns the current vehicle snapshot.
	Status(ctx context.Context, token string) (*model.Snapshot, error)
}

// BackendAPI aggregates every backend surface the dashboard consumes.
// The concrete REST client implements all of them.
type BackendAPI interface {
	AuthAPI
	DirectoryAPI
	EmailAdminAPI
	MaintenanceAPI
}
