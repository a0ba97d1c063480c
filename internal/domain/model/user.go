//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/carcarepro/carcare-ui/internal/domain/auth"
)

const (
	maxUserNameLen = 255
	minPasswordLen = 8
	maxPasswordLen = 128
)

// User is a registered account as reported by the backend directory.
type User struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          auth.Role `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateUserRequest represents parameters to register a new account.
// Role and EmailVerified travel on the wire even though the backend may
// override them for admin-created accounts.
type CreateUserRequest struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Password      string    `json:"password"`
	Role          auth.Role `json:"role"`
	EmailVerified bool      `json:"email_verified"`
}

// Validate validates CreateUserRequest and normalizes its fields.
func (r *CreateUserRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Name) > maxUserNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("email is not a valid address")
	}
	if len(r.Password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	if len(r.Password) > maxPasswordLen {
		return errors.New("password cannot exceed 128 characters")
	}
	if r.Role == "" {
		r.Role = auth.RoleUser
	}
	if r.Role != auth.RoleUser && r.Role != auth.RoleAdmin {
		return errors.New("role must be one of: user, admin")
	}
	return nil
}
