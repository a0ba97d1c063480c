package service

import (
	"context"
	"fmt"

	"github.com/carcarepro/carcare-ui/internal/core"
	"github.com/carcarepro/carcare-ui/internal/domain/model"
	apperrors "github.com/carcarepro/carcare-ui/internal/errors"
)

// AdminServiceOptions groups dependencies for AdminService.
type AdminServiceOptions struct {
	Directory  core.DirectoryAPI
	EmailAdmin core.EmailAdminAPI
}

// AdminService backs the admin dashboard: user directory listing and
// registration, and the email configuration test workflow.
type AdminService struct {
	directory  core.DirectoryAPI
	emailAdmin core.EmailAdminAPI
}

// NewAdminService constructs a new AdminService.
func NewAdminService(opts AdminServiceOptions) *AdminService {
	return &AdminService{
		directory:  opts.Directory,
		emailAdmin: opts.EmailAdmin,
	}
}

// ListUsers fetches the full directory. The backend has no search
// parameter; the search box filters the rendered rows in the view layer.
func (s *AdminService) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	users, err := s.directory.ListUsers(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CreateUser validates and registers a new account. Validation errors
// surface as AppError validation failures before any backend call.
func (s *AdminService) CreateUser(
	ctx context.Context,
	token string,
	req model.CreateUserRequest,
) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	user, err := s.directory.RegisterUser(ctx, token, req)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	return user, nil
}

// TestEmailConfig runs the backend's email configuration check.
func (s *AdminService) TestEmailConfig(ctx context.Context, token string) (*model.EmailConfigResult, error) {
	result, err := s.emailAdmin.TestEmailConfig(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("test email config: %w", err)
	}
	return result, nil
}
